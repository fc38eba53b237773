package router

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
	"github.com/muhafiz/muhafiz-api/internal/pkg/constants"
	"github.com/muhafiz/muhafiz-api/internal/pkg/middleware"
)

// HttpRouter installs the cross-cutting surface: CORS, health, metrics,
// uploaded media and API docs.
type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	cfg := h.deps.Config

	app.Use(middleware.OriginGuard(cfg.AllowedOrigins), middleware.CORS(cfg.AllowedOrigins))

	app.Get(constants.HealthRoute, h.handleHealth)

	// fiber metrics
	if cfg.MetricsUser != "" && cfg.MetricsPassword != "" {
		app.Get(constants.MetricsRoute, basicauth.New(basicauth.Config{
			Users: map[string]string{
				cfg.MetricsUser: cfg.MetricsPassword,
			},
		}), monitor.New())
	} else {
		app.Get(constants.MetricsRoute, monitor.New())
	}

	// static uploads
	if cfg.Media.Driver == config.MediaDriverLocal {
		app.Static(constants.UploadsRoute, cfg.Media.UploadDir, fiber.Static{
			CacheDuration: 10 * time.Second,
			Compress:      false,
			MaxAge:        604800, // 7 days
		})
	}

	// SWAGGER / OPENAPI
	if cfg.OpenAPIFile != "" {
		if _, err := os.Stat(cfg.OpenAPIFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: constants.DocsBasePath,
				FilePath: cfg.OpenAPIFile,
				Path:     "v1",
				Title:    "Muhafiz API",
			}))
		} else {
			log.Warnf("[Router] OpenAPI document %s not found, docs disabled", cfg.OpenAPIFile)
		}
	}
}

func (h HttpRouter) handleHealth(c *fiber.Ctx) error {
	if h.deps.DB != nil {
		sqlDB, err := h.deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Context())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "error",
				"database": err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}
