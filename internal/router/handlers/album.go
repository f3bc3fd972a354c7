package handlers

import (
	"fmt"
	"html/template"
	"slices"
	"time"

	"github.com/VeranoAtelier/verano-web/internal/router"
	"github.com/gofiber/fiber/v2"
)

func init() {
	router.Routes = append(router.Routes, &AlbumHandler{})
}

type AlbumHandler struct {
	router.BasicHandler
}

func (r *AlbumHandler) Filter() (method string, path string) {
	return "GET", "/gallery/:album"
}

func (r *AlbumHandler) TemplatesToInject() []string {
	return []string{"views/layouts/base.html", "views/pages/album.html"}
}

func (r *AlbumHandler) ToCache() router.CacheSetting {
	return router.ByUrlOnly
}

func (r *AlbumHandler) CacheDuration() time.Duration {
	return 1 * time.Hour
}

func (r *AlbumHandler) Render(c *fiber.Ctx, supplements *router.Supplements, templateMap fiber.Map) (statusCode int, err error) {
	album := c.Params("album")
	if !slices.Contains(supplements.Albums, album) {
		return fiber.StatusNotFound, fmt.Errorf("album '%s' is not published", album)
	}

	page, err := supplements.Catalog.Page(album)
	if err != nil {
		return fiber.StatusInternalServerError, fmt.Errorf("fail to build page for album '%s': %w", album, err)
	}

	templateMap["Title"] = page.Meta.Title
	templateMap["ShortDescription"] = page.Meta.ShortDescription
	templateMap["Album"] = album
	templateMap["Body"] = template.HTML(page.HTML)
	templateMap["PhotoCount"] = page.Index.Len()
	return fiber.StatusOK, nil
}
