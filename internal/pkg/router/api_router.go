package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/muhafiz/muhafiz-api/app/controllers"
	"github.com/muhafiz/muhafiz-api/internal/pkg/constants"
	"github.com/muhafiz/muhafiz-api/internal/pkg/middleware"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	repos := h.deps.Repos
	auth := middleware.RequireToken(h.deps.Config.JWTSecret)

	api := app.Group(constants.APIRoute)

	// Zone proxy
	zones := controllers.NewZoneController(h.deps.Geodata)
	api.Get("/zones", zones.HandleZones)
	api.Post("/safe-route", zones.HandleSafeRoute)

	// Users
	users := controllers.NewUserController(repos.User)
	api.Get("/users", users.HandleList)
	api.Post("/users", users.HandleRegister)
	api.Delete("/users/:id", users.HandleDelete)

	// Community forum
	community := controllers.NewCommunityController(repos.ForumTopic, repos.Resource)
	communityGroup := api.Group("/community")
	communityGroup.Get("/topics", community.HandleListTopics)
	communityGroup.Post("/topics", community.HandleCreateTopic)
	communityGroup.Get("/resources", community.HandleListResources)
	communityGroup.Post("/resources", community.HandleCreateResource)

	// Discussion channels
	channels := controllers.NewChannelController(repos.Channel)
	api.Post("/discussion-channels", auth, channels.HandleCreate)
	api.Get("/discussion-channels", channels.HandleList)
	api.Get("/discussion-channels/:id", channels.HandleGet)

	// Posts, replies and reactions
	posts := controllers.NewPostController(repos.Post, repos.Channel, h.deps.Ingestor)
	api.Post("/posts", auth, posts.HandleCreate)
	api.Get("/posts", posts.HandleList)
	api.Get("/posts/:postId", posts.HandleGet)
	api.Post("/posts/:postId/replies", auth, posts.HandleReply)
	api.Post("/posts/:postId/react", auth, posts.HandleReact)

	// Incident reports
	incidents := controllers.NewIncidentController(repos.Incident, h.deps.Ingestor)
	api.Post("/incidents", auth, incidents.HandleCreate)
	api.Get("/incidents", incidents.HandleList)
	api.Get("/incidents/:id", incidents.HandleGet)
	api.Put("/incidents/:id", incidents.HandleUpdate)
	api.Put("/incidents/:id/status", incidents.HandleUpdateStatus)
	api.Delete("/incidents/:id", incidents.HandleDelete)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
