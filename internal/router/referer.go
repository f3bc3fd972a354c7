package router

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// PathMatcher resolves a raw request path back to a registered route
// pattern and its params, through a shadow fiber app so matching rules
// stay identical to the serving app's.
type PathMatcher struct {
	app *fiber.App
}

func NewPathMatcher() *PathMatcher {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	return &PathMatcher{app: app}
}

func (pm *PathMatcher) AddRoute(method, pattern string) {
	pm.app.Add(method, pattern, func(c *fiber.Ctx) error {
		// Locals ride the underlying fasthttp ctx, which is the only
		// state MatchPath shares with the handler that ran the match.
		c.Locals("pattern", pattern)
		c.Locals("params", c.AllParams())
		return nil
	})
}

func (pm *PathMatcher) MatchPath(method, path string) (pattern string, params map[string]string, matched bool) {
	fctx := &fasthttp.RequestCtx{}
	fctx.Request.Header.SetMethod(method)
	fctx.Request.SetRequestURI(path)

	pm.app.Handler()(fctx)

	pattern, _ = fctx.UserValue("pattern").(string)
	if pattern == "" {
		return "", nil, false
	}

	params, _ = fctx.UserValue("params").(map[string]string)
	if params == nil {
		params = make(map[string]string)
	}

	return pattern, params, true
}

// GetAlbumFromReferer resolves which album page an API request came from.
// The lightbox endpoints carry no album of their own; the Referer header
// names the page whose gallery the visitor is interacting with. On
// rejection the returned status code tells the handler what to answer.
func GetAlbumFromReferer(c *fiber.Ctx, matcher *PathMatcher, albums []string) (album string, statusCode int, err error) {
	referer := c.Get("Referer")
	if referer == "" {
		return "", fiber.StatusBadRequest, fmt.Errorf("'Referer' header is empty")
	}

	urlStruct, err := url.ParseRequestURI(referer)
	if err != nil {
		return "", fiber.StatusBadRequest, fmt.Errorf("'Referer' header is invalid: %w", err)
	}

	_, params, matched := matcher.MatchPath("GET", urlStruct.EscapedPath())
	if !matched {
		return "", fiber.StatusBadRequest, fmt.Errorf("'Referer' path '%s' does not name a page", urlStruct.EscapedPath())
	}

	album, ok := params["album"]
	if !ok {
		return "", fiber.StatusBadRequest, fmt.Errorf("'Referer' page carries no gallery")
	}

	if !slices.Contains(albums, album) {
		return "", fiber.StatusNotFound, fmt.Errorf("album '%s' is not published", album)
	}

	return album, fiber.StatusOK, nil
}
