package tenant

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	dir := t.TempDir()
	driver := database.NewSQLiteDriver(dir)
	cfg := &config.Config{DBName: "control", SQLiteDir: dir}

	control, err := database.Connect(context.Background(), driver, cfg)
	require.NoError(t, err)
	require.NoError(t, database.MigrateControl(control))

	r := NewRegistry(driver, control, database.PoolOptions{MaxOpenConns: 10})
	t.Cleanup(func() { r.Close() })
	return r
}

// seedAdmin inserts a super-admin (if missing) and an admin owning a provisioned store.
func seedAdmin(t *testing.T, r *Registry, email, company string, status models.Status) *models.Admin {
	t.Helper()
	ctx := context.Background()

	var sa models.SuperAdmin
	if err := r.Control().First(&sa).Error; err != nil {
		sa = models.SuperAdmin{Email: "root@x.com", Password: "hash", Singleton: true}
		require.NoError(t, r.Control().Create(&sa).Error)
	}

	id := GenerateStoreIdentifier(company)
	require.NoError(t, NewProvisioner(r).Provision(ctx, id))

	admin := models.Admin{
		Email:        email,
		Password:     "hash",
		CompanyName:  company,
		DatabaseName: id,
		CreatedBy:    sa.ID,
		Status:       status,
	}
	require.NoError(t, r.Control().Create(&admin).Error)
	return &admin
}
