package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/http/handlers"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Policies       *handlers.PoliciesHandler
	Claims         *handlers.ClaimsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.Me)

	app.Get("/adjusters",
		cfg.AuthMiddleware.Handle,
		auth.RequireRole(domain.RoleManager, domain.RoleAdmin),
		cfg.Users.ListAdjusters)

	policies := app.Group("/policies", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	policies.Get("/", cfg.Policies.ListPolicies)
	policies.Post("/default", cfg.Policies.EnsureDefaultPolicy)

	claims := app.Group("/claims", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	claims.Post("/", auth.RequireRole(domain.RoleCustomer, domain.RoleAgent), cfg.Claims.CreateClaim)
	claims.Get("/", cfg.Claims.ListClaims)
	claims.Get("/:id", cfg.Claims.GetClaim)
	claims.Get("/:id/actions", cfg.Claims.ListActions)
	claims.Post("/:id/transition", cfg.Claims.Transition)
	claims.Get("/:id/history", cfg.Claims.History)
	claims.Post("/:id/notes", cfg.Claims.AddNote)
	claims.Get("/:id/notes", cfg.Claims.ListNotes)
	claims.Post("/:id/documents", cfg.Claims.AddDocument)
	claims.Get("/:id/documents", cfg.Claims.ListDocuments)
}
