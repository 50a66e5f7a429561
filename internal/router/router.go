package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/classboard/classboard-api/internal/config"
	"github.com/classboard/classboard-api/internal/handler"
	"github.com/classboard/classboard-api/internal/middleware"
	"github.com/classboard/classboard-api/internal/observability"
)

// Dependencies carries the handlers the router wires up.
type Dependencies struct {
	GraphQL       *handler.GraphQLHandler
	Subscriptions *handler.SubscriptionHandler
}

// Register mounts all application routes on the Fiber app.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1")
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	graphql := app.Group("/graphql")
	if cfg.JWTSecret != "" {
		graphql.Use(middleware.JWTProtected(cfg.JWTSecret))
	}
	deps.GraphQL.Register(graphql)
	deps.Subscriptions.Register(graphql)
}
