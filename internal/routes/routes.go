package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *auth.TokenManager,
	resolver *tenant.Resolver,
	healthHandler *handlers.HealthHandler,
	superAdminHandler *handlers.SuperAdminHandler,
	adminHandler *handlers.AdminHandler,
	userHandler *handlers.UserHandler,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// General API rate limit per IP
	api := app.Group("/api", rateLimit(cfg.RateLimit))

	api.Get("/health", healthHandler.Check)

	// Login and registration get a stricter limit.
	authLimit := rateLimit(cfg.AuthRateLimit)

	// Protected routes attach JWT and scope per route so public routes in
	// the same group never run them.
	jwt := middleware.JWTProtected(tokens)
	superAdminOnly := middleware.Scope(resolver, auth.RoleSuperAdmin)
	adminOnly := middleware.Scope(resolver, auth.RoleAdmin)
	userOnly := middleware.Scope(resolver, auth.RoleUser)

	superAdmin := api.Group("/super-admin")
	superAdmin.Post("/register", authLimit, superAdminHandler.Register)
	superAdmin.Post("/login", authLimit, superAdminHandler.Login)
	superAdmin.Post("/admins", jwt, superAdminOnly, superAdminHandler.CreateAdmin)
	superAdmin.Get("/admins", jwt, superAdminOnly, superAdminHandler.ListAdmins)
	superAdmin.Get("/admins/:id", jwt, superAdminOnly, superAdminHandler.GetAdmin)
	superAdmin.Put("/admins/:id/status", jwt, superAdminOnly, superAdminHandler.UpdateAdminStatus)

	admins := api.Group("/admins")
	admins.Post("/login", authLimit, adminHandler.Login)
	admins.Get("/profile", jwt, adminOnly, adminHandler.Profile)
	admins.Post("/users", jwt, adminOnly, adminHandler.CreateUser)
	admins.Get("/users", jwt, adminOnly, adminHandler.ListUsers)
	admins.Get("/users/:id", jwt, adminOnly, adminHandler.GetUser)
	admins.Put("/users/:id/status", jwt, adminOnly, adminHandler.UpdateUserStatus)

	users := api.Group("/users")
	users.Post("/login", authLimit, middleware.TenantFromHeader(resolver), userHandler.Login)
	users.Get("/profile", jwt, userOnly, userHandler.Profile)
	users.Put("/profile", jwt, userOnly, userHandler.UpdateProfile)
	users.Put("/change-password", jwt, userOnly, userHandler.ChangePassword)
}

// rateLimit allows perMinute requests per IP. A non-positive value
// disables the limit.
func rateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}
