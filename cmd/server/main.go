package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver == config.DriverPostgres && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	driver, err := database.NewDriver(cfg)
	if err != nil {
		slog.Error("invalid storage driver", "error", err)
		os.Exit(1)
	}

	// Control store
	ctx := context.Background()
	control, err := database.Connect(ctx, driver, cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.MigrateControl(control); err != nil {
		slog.Error("control store migration failed", "error", err)
		os.Exit(1)
	}

	// Control-store log sink (ERROR+ async batch)
	logHandler := logging.NewMultiHandler(stdout, logging.NewStoreHandler(control))
	slog.SetDefault(slog.New(logHandler))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(control, cfg.LogRetention, cleanupDone)

	// Tenant registry
	registry := tenant.NewRegistry(driver, control, database.PoolOptionsFrom(cfg))
	resolver := tenant.NewResolver(registry)
	provisioner := tenant.NewProvisioner(registry)

	// Services
	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	authService := services.NewAuthService(registry, tokens, hasher)
	adminService := services.NewAdminService(registry, provisioner, hasher, tenant.NewIdentifierGenerator(time.Now))
	userService := services.NewUserService(hasher)

	// Handlers
	healthHandler := handlers.NewHealthHandler(registry)
	superAdminHandler := handlers.NewSuperAdminHandler(authService, adminService)
	adminHandler := handlers.NewAdminHandler(authService, adminService, userService)
	userHandler := handlers.NewUserHandler(authService, userService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.Metrics())
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, tokens, resolver, healthHandler, superAdminHandler, adminHandler, userHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "driver", driver.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	logHandler.Stop()
	slog.SetDefault(slog.New(stdout))
	sentry.Flush(2 * time.Second)

	// Close every tenant pool and the control pool
	if err := registry.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
