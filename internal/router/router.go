package router

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/VeranoAtelier/verano-web/config"
	"github.com/VeranoAtelier/verano-web/internal/catalog"
	"github.com/VeranoAtelier/verano-web/internal/featured"
	"github.com/VeranoAtelier/verano-web/internal/gallerymd"
	"github.com/VeranoAtelier/verano-web/internal/lightbox"
	"github.com/VeranoAtelier/verano-web/internal/mailer"
	"github.com/VeranoAtelier/verano-web/internal/mdstyle"
	"github.com/VeranoAtelier/verano-web/internal/reindexer"
	"github.com/VeranoAtelier/verano-web/internal/storage"
	"github.com/VeranoAtelier/verano-web/internal/templatemanager"
	"github.com/VeranoAtelier/verano-web/internal/viewstats"
	"github.com/VeranoAtelier/verano-web/locale"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

type CacheSetting int

const (
	Disabled CacheSetting = iota
	ByUrlOnly
	ByUrlAndQuery
)

var (
	Routes = make([]Route, 0)
)

type Route interface {
	Filter() (method string, path string)
	ToCache() CacheSetting
	CacheDuration() time.Duration
	TemplatesToInject() []string
	Render(c *fiber.Ctx, supplements *Supplements, templateMap fiber.Map) (statusCode int, err error)
}

type Supplements struct {
	DB               *sql.DB
	Storage          *storage.Client
	Albums           []string
	L                *locale.LocaleConfig
	Sessions         *SessionStore
	PageCache        *ristretto.Cache[string, []byte]
	Tracker          *viewstats.Tracker
	Mailer           *mailer.Mailer
	Featured         *featured.Picker
	Reindexer        *reindexer.Reindexer
	Catalog          *catalog.Catalog
	TemplateManager  *templatemanager.TemplateManager
	MarkdownRenderer goldmark.Markdown
	AlbumMatcher     *PathMatcher
}

type Router struct {
	supplements *Supplements
	app         *fiber.App
}

func NewRouter(cfg *config.Config) (*Router, error) {
	supplements := &Supplements{
		Albums: cfg.Albums.PublicNames,
	}

	var err error

	supplements.DB, err = sql.Open(cfg.Stats.Type, cfg.Stats.Cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize db: %w", err)
	}

	driver, err := sqlite3.WithInstance(supplements.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to initialize driver for migrating db: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		cfg.Stats.Type, driver)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize migration client: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("fail to apply migrations: %w", err)
	}
	slog.Debug("successfully applied migrations")

	supplements.Storage, err = storage.NewClient(&cfg.Albums.Storage.Config)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize album storage client: %w", err)
	}

	supplements.L, err = locale.InitConfig(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize locale: %w", err)
	}

	supplements.MarkdownRenderer = goldmark.New(
		goldmark.WithExtensions(
			gallerymd.NewGalleryExtension(),
			mdstyle.NewSiteStyleExtension(),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	supplements.Catalog = catalog.NewCatalog(supplements.Storage, supplements.MarkdownRenderer)

	supplements.PageCache, err = ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e6,     // 1,000,000
		MaxCost:     1 << 29, // 512 MB
		BufferItems: 64,      // number of keys per Get buffer.
	})
	if err != nil {
		return nil, fmt.Errorf("fail to initialize page cache: %w", err)
	}

	supplements.Tracker, err = viewstats.NewTracker(supplements.DB, []byte(cfg.Stats.Salt))
	if err != nil {
		return nil, fmt.Errorf("fail to initialize view tracker: %w", err)
	}

	supplements.Mailer, err = mailer.NewMailer(&cfg.Mail)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize mailer: %w", err)
	}

	supplements.Featured, err = featured.NewPicker(supplements.Storage, cfg.Albums.PublicNames)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize featured picker: %w", err)
	}

	supplements.TemplateManager, err = templatemanager.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("fail to initialize template manager: %w", err)
	}

	if err = supplements.TemplateManager.Add(lightbox.ModalTemplate, "views/partials/lightbox-modal.html"); err != nil {
		return nil, fmt.Errorf("fail to register lightbox modal template: %w", err)
	}

	sessionTTL, err := time.ParseDuration(cfg.Sessions.TTL)
	if err != nil {
		return nil, fmt.Errorf("fail to parse session ttl: %w", err)
	}

	supplements.Sessions, err = NewSessionStore([]byte(cfg.Sessions.Salt), sessionTTL,
		supplements.TemplateManager, supplements.L)
	if err != nil {
		return nil, fmt.Errorf("fail to initialize session store: %w", err)
	}

	supplements.Reindexer, err = reindexer.NewReindexer(supplements.Storage, cfg.Albums.PublicNames, cfg.Albums.RescanCron,
		func(album string, photos []*storage.Photo) error {
			supplements.Catalog.Invalidate(album)
			supplements.PageCache.Clear()
			if err := supplements.Featured.Refresh(); err != nil {
				return fmt.Errorf("fail to refresh featured pool: %w", err)
			}
			slog.Info("album reindexed",
				slog.String("album", album),
				slog.Int("new_photos", len(photos)),
			)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("fail to initialize reindexer: %w", err)
	}

	enablePrintRoutes := false
	if cfg.LogLevel <= slog.LevelDebug {
		enablePrintRoutes = true
	}

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: enablePrintRoutes,
		ProxyHeader:       "X-Forwarded-For",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Albums.Storage.Config.PublicBaseURL,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	supplements.AlbumMatcher = NewPathMatcher()

	return &Router{supplements, app}, nil
}

func (r *Router) InitRoutes() (err error) {
	for _, route := range Routes {
		method, match := route.Filter()

		if templates := route.TemplatesToInject(); len(templates) > 0 {
			if err = r.supplements.TemplateManager.Add(method+" "+match, templates...); err != nil {
				return fmt.Errorf("failed to add '%s %s' route into template manager: %w", method, match, err)
			}
		}

		if method == fiber.MethodGet && strings.Contains(match, ":album") {
			r.supplements.AlbumMatcher.AddRoute(method, match)
		}

		currentRoute := route
		r.app.Add(method, match, func(c *fiber.Ctx) error {
			var cacheKey string
			trimmedPath := strings.Trim(c.Path(), "/")
			queryString := c.Request().URI().QueryString()

			switch currentRoute.ToCache() {
			case ByUrlOnly:
				cacheKey = fmt.Sprintf("%s.full-page.%s", method, trimmedPath)
			case ByUrlAndQuery:
				cacheKey = fmt.Sprintf("%s.full-page.%s.%s", method, trimmedPath, queryString)
			}

			if currentRoute.ToCache() != Disabled {
				if val, ok := r.supplements.PageCache.Get(cacheKey); val != nil && ok {
					c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
					return c.Status(fiber.StatusOK).Type("html").Send(val)
				}
			}

			defaultMap := fiber.Map{
				"L":           r.supplements.L,
				"Path":        trimmedPath,
				"QueryString": queryString,
			}

			statusCode, err := currentRoute.Render(c, r.supplements, defaultMap)
			if err != nil {
				slog.Error("failed to finish rendering a page",
					slog.Int("status_code", statusCode),
					slog.String("method", method),
					slog.String("path", c.Path()),
					slog.String("match", match),
					slog.String("query", string(queryString)),
					slog.String("error", err.Error()),
				)
				c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
				return c.Status(statusCode).SendString(err.Error())
			}
			if statusCode == fiber.StatusNoContent {
				return c.SendStatus(statusCode)
			}

			var content []byte
			if len(currentRoute.TemplatesToInject()) > 0 {
				content, err = r.supplements.TemplateManager.Render(method+" "+match, defaultMap)
				if err != nil {
					slog.Error("failed to generate page",
						slog.String("method", method),
						slog.String("path", c.Path()),
						slog.String("match", match),
						slog.String("query", string(queryString)),
						slog.String("error", err.Error()),
					)
					c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
					return c.Status(fiber.ErrInternalServerError.Code).SendString("failed to generate page")
				}
			}
			if val, ok := defaultMap["Output"]; ok && len(content) == 0 {
				content = val.([]byte)
			}

			if statusCode >= 200 && statusCode < 300 && currentRoute.ToCache() != Disabled {
				go r.supplements.PageCache.SetWithTTL(cacheKey, content, int64(len(content)), currentRoute.CacheDuration())
			}

			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(statusCode).Type("html").Send(content)
		})
	}

	r.app.Static("/", "./static")

	Routes = make([]Route, 0)

	return nil
}

func (r *Router) Listen(endpoint string) error {
	if err := r.app.Listen(endpoint); err != nil {
		return fmt.Errorf("error while running fiber server: %w", err)
	}
	return nil
}

func (r *Router) Close() (err error) {
	allErrors := make([]error, 0)
	if err = r.supplements.Reindexer.Close(); err != nil {
		allErrors = append(allErrors, fmt.Errorf("fail to shutdown reindexer: %w", err))
	}
	if err = r.app.Shutdown(); err != nil {
		allErrors = append(allErrors, fmt.Errorf("fail to shutdown fiber server: %w", err))
	}
	r.supplements.Sessions.Close()
	if err = r.supplements.Tracker.Close(); err != nil {
		allErrors = append(allErrors, fmt.Errorf("fail to dump view stats: %w", err))
	}
	if err = r.supplements.DB.Close(); err != nil {
		allErrors = append(allErrors, fmt.Errorf("fail to close db connection: %w", err))
	}
	r.supplements.PageCache.Close()
	return errors.Join(allErrors...)
}
