package main

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tenantctl",
		Short:        "Operate the tenant control store",
		SilenceUsage: true,
	}
	root.AddCommand(newBootstrapCommand())
	root.AddCommand(newAdminsCommand())
	return root
}

// env is the subset of the server's wiring the commands need.
type env struct {
	registry *tenant.Registry
	auth     *services.AuthService
	admins   *services.AdminService
}

// openEnv connects to the control store named by the environment, the
// same way the server does.
func openEnv(ctx context.Context) (*env, error) {
	cfg := config.Load()

	driver, err := database.NewDriver(cfg)
	if err != nil {
		return nil, err
	}
	control, err := database.Connect(ctx, driver, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateControl(control); err != nil {
		database.Close(control)
		return nil, fmt.Errorf("control store migration failed: %w", err)
	}

	registry := tenant.NewRegistry(driver, control, database.PoolOptionsFrom(cfg))
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.JWTExpiry)

	return &env{
		registry: registry,
		auth:     services.NewAuthService(registry, tokens, hasher),
		admins:   services.NewAdminService(registry, tenant.NewProvisioner(registry), hasher, tenant.NewIdentifierGenerator(nil)),
	}, nil
}

func (e *env) Close() error {
	return e.registry.Close()
}
