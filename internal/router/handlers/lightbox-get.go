package handlers

import (
	"fmt"

	"github.com/VeranoAtelier/verano-web/internal/router"
	"github.com/gofiber/fiber/v2"
)

func init() {
	router.Routes = append(router.Routes, &LightboxGetHandler{})
}

// LightboxGetHandler re-serves the current viewer partial without routing
// any input, so a reloaded page can restore what the visitor was looking
// at while their session is still alive.
type LightboxGetHandler struct {
	router.BasicHandler
}

func (r *LightboxGetHandler) Filter() (method string, path string) {
	return "GET", "/api/v1/lightbox"
}

func (r *LightboxGetHandler) Render(c *fiber.Ctx, supplements *router.Supplements, templateMap fiber.Map) (statusCode int, err error) {
	album, status, err := router.GetAlbumFromReferer(c, supplements.AlbumMatcher, supplements.Albums)
	if err != nil {
		return status, fmt.Errorf("error resolving album from referer: %w", err)
	}

	session, ok := supplements.Sessions.Peek(c.IP(), album)
	if !ok {
		return fiber.StatusNoContent, nil
	}

	state, html := session.Snapshot()
	if !state.Open {
		return fiber.StatusNoContent, nil
	}

	templateMap["Output"] = html
	return fiber.StatusOK, nil
}
