package hosting

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/features/importing"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/features/metrics"
	"github.com/contre95/songshelf/src/features/ui"
	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

// DefaultViewsDir is where the HTML templates live relative to the working directory.
const DefaultViewsDir = "./views"

// Services bundles the feature services the server exposes.
type Services struct {
	Library   *library.Service
	Adding    *adding.Service
	Editing   *editing.Service
	Deleting  *deleting.Service
	Importing *importing.Service
	Metrics   *metrics.Service
	// Collector is nil when the Prometheus endpoint is disabled.
	Collector *metrics.Collector
}

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server rendering templates from viewsDir.
func NewServer(cfg *config.Manager, services Services, viewsDir string) *Server {
	if viewsDir == "" {
		viewsDir = DefaultViewsDir
	}
	engine := html.New(viewsDir, ".html")
	engine.Debug(cfg.Get().Logger.Level == "debug")
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("duration", func(seconds int) string {
		if seconds <= 0 {
			return "0:00"
		}
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	})
	engine.AddFunc("ago", func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	})
	engine.AddFunc("comma", func(n int) string {
		return humanize.Comma(int64(n))
	})

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.Error("Internal Server Error", "error", err)
			}
			return c.Status(code).SendString(err.Error())
		},
		AppName:               "Songshelf",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	var recorder RequestRecorder
	if services.Collector != nil && cfg.Get().Metrics.Enabled {
		recorder = services.Collector
	}
	app.Use(RequestLogger(recorder, cfg.Get().Logger.Level == "debug"))

	app.Static("/", "./public")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	ui.RegisterRoutes(app, ui.NewHandler(cfg, services.Library, services.Metrics))
	library.RegisterRoutes(app, services.Library)
	adding.RegisterRoutes(app, services.Adding)
	editing.RegisterRoutes(app, services.Editing)
	deleting.RegisterRoutes(app, services.Deleting)
	importing.RegisterRoutes(app, services.Importing)
	config.RegisterRoutes(app, cfg)

	metricsPath := ""
	if cfg.Get().Metrics.Enabled {
		metricsPath = cfg.Get().Metrics.Path
	} else {
		services.Collector = nil
	}
	metrics.RegisterRoutes(app, services.Metrics, services.Collector, metricsPath)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// App exposes the underlying Fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
