package router

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/muhafiz/muhafiz-api/app/controllers"
	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
	"github.com/muhafiz/muhafiz-api/internal/pkg/upload"
)

// Router installs a group of routes on the app
type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are the long-lived components the routes are wired to
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Repos    *repository.Repositories
	Ingestor *upload.Ingestor
	Geodata  controllers.GeodataClient
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	// HttpRouter goes first: its CORS handlers must run before any API route.
	setup(app, NewHttpRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
