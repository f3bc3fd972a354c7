package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VeranoAtelier/verano-web/internal/lightbox"
	"github.com/VeranoAtelier/verano-web/internal/router"
	"github.com/gofiber/fiber/v2"
)

func init() {
	router.Routes = append(router.Routes, &LightboxEventHandler{})
}

// LightboxEventHandler receives raw page input (clicks on gallery targets,
// key presses) and answers with the freshly rendered viewer partial. The
// page swaps the partial in place; all viewer state lives server-side in
// the visitor's session.
type LightboxEventHandler struct {
	router.BasicHandler
}

func (r *LightboxEventHandler) Filter() (method string, path string) {
	return "POST", "/api/v1/lightbox/event"
}

func (r *LightboxEventHandler) Render(c *fiber.Ctx, supplements *router.Supplements, templateMap fiber.Map) (statusCode int, err error) {
	album, status, err := router.GetAlbumFromReferer(c, supplements.AlbumMatcher, supplements.Albums)
	if err != nil {
		return status, fmt.Errorf("error resolving album from referer: %w", err)
	}

	var ev lightbox.Event
	switch kind := c.FormValue("kind"); kind {
	case "pointer":
		ev = lightbox.Event{Kind: lightbox.PointerEvent, Target: c.FormValue("target")}
	case "key":
		ev = lightbox.Event{Kind: lightbox.KeyEvent, Key: c.FormValue("key")}
	default:
		return fiber.StatusBadRequest, fmt.Errorf("unknown event kind '%s'", kind)
	}

	page, err := supplements.Catalog.Page(album)
	if err != nil {
		return fiber.StatusInternalServerError, fmt.Errorf("fail to build page for album '%s': %w", album, err)
	}

	session := supplements.Sessions.Acquire(c.IP(), album, page.Index)

	handled, err := session.Route(ev)
	if err != nil {
		if errors.Is(err, lightbox.ErrOutOfRange) {
			return fiber.StatusBadRequest, fmt.Errorf("viewer rejected event: %w", err)
		}
		return fiber.StatusInternalServerError, fmt.Errorf("fail to route viewer event: %w", err)
	}
	if !handled {
		return fiber.StatusNoContent, nil
	}

	if strings.HasPrefix(ev.Target, "item:") {
		if item, ok := session.CurrentItem(); ok {
			photoRef := album + "/" + item.SourceURL
			alreadySeen := supplements.Tracker.RecordOpen(c.IP(), photoRef)
			if !alreadySeen {
				slog.Debug("first viewer open for a photo by this visitor",
					slog.String("album", album),
					slog.String("photo", item.SourceURL),
					slog.Int("open_count", supplements.Tracker.GetOpenCount(photoRef)),
				)
			}
		}
	}

	_, html := session.Snapshot()
	templateMap["Output"] = html

	return fiber.StatusOK, nil
}
