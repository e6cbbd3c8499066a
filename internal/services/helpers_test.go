package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	registry *tenant.Registry
	resolver *tenant.Resolver
	tokens   *auth.TokenManager
	auth     *AuthService
	admins   *AdminService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDriver(t, nil)
}

// newFixtureWithDriver lets a test swap the store driver used by the
// registry. The control store is always plain sqlite.
func newFixtureWithDriver(t *testing.T, wrap func(database.Driver) database.Driver) *fixture {
	t.Helper()

	dir := t.TempDir()
	var driver database.Driver = database.NewSQLiteDriver(dir)
	cfg := &config.Config{DBName: "control", SQLiteDir: dir}

	control, err := database.Connect(context.Background(), driver, cfg)
	require.NoError(t, err)
	require.NoError(t, database.MigrateControl(control))

	if wrap != nil {
		driver = wrap(driver)
	}
	registry := tenant.NewRegistry(driver, control, database.PoolOptions{MaxOpenConns: 10})
	t.Cleanup(func() { registry.Close() })

	tokens := auth.NewTokenManager([]byte("services-test-secret"), time.Hour)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	return &fixture{
		registry: registry,
		resolver: tenant.NewResolver(registry),
		tokens:   tokens,
		auth:     NewAuthService(registry, tokens, hasher),
		admins:   NewAdminService(registry, tenant.NewProvisioner(registry), hasher, tenant.NewIdentifierGenerator(nil)),
		users:    NewUserService(hasher),
	}
}

// superAdmin registers the super-admin and returns its id.
func (f *fixture) superAdmin(t *testing.T) uint {
	t.Helper()
	sa, err := f.auth.RegisterSuperAdmin(context.Background(), &dto.RegisterSuperAdminRequest{
		Email: "a@x.com", Password: "Passw0rd!",
	})
	require.NoError(t, err)
	return sa.ID
}

func (f *fixture) admin(t *testing.T, creatorID uint, email, company string) *dto.AdminResponse {
	t.Helper()
	admin, err := f.admins.CreateAdmin(context.Background(), creatorID, &dto.CreateAdminRequest{
		Email: email, Password: "Passw0rd!", CompanyName: company,
	})
	require.NoError(t, err)
	return admin
}
