package handlers

import (
	"time"

	"github.com/VeranoAtelier/verano-web/internal/router"
	"github.com/gofiber/fiber/v2"
)

func init() {
	router.Routes = append(router.Routes, &RootHandler{})
}

type RootHandler struct {
	router.BasicHandler
}

func (r *RootHandler) Filter() (method string, path string) {
	return "GET", "/"
}

func (r *RootHandler) TemplatesToInject() []string {
	return []string{"views/layouts/base.html", "views/pages/index.html"}
}

func (r *RootHandler) ToCache() router.CacheSetting {
	return router.ByUrlOnly
}

func (r *RootHandler) CacheDuration() time.Duration {
	return 1 * time.Hour
}

func (r *RootHandler) Render(c *fiber.Ctx, supplements *router.Supplements, templateMap fiber.Map) (statusCode int, err error) {
	templateMap["Title"] = supplements.L.Site.Title
	templateMap["Tagline"] = supplements.L.Site.Tagline
	templateMap["Albums"] = supplements.Albums
	templateMap["FeaturedPhotos"] = supplements.Featured.Give(6)
	return fiber.StatusOK, nil
}
