package database

import (
	"context"
	"os"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidStoreName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"tenant id", "tenant_acme_co_1700000000000", true},
		{"control store", "multi_tenant_main", true},
		{"empty", "", false},
		{"uppercase", "Tenant_A", false},
		{"quote injection", `x"; DROP DATABASE y; --`, false},
		{"path traversal", "../etc/passwd", false},
		{"too long", "a123456789012345678901234567890123456789012345678901234567890123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidStoreName(tt.in))
		})
	}
}

func TestNewDriver(t *testing.T) {
	d, err := NewDriver(&config.Config{DBDriver: config.DriverSQLite, SQLiteDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, d.Name())

	d, err = NewDriver(&config.Config{DBDriver: config.DriverPostgres})
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, d.Name())

	_, err = NewDriver(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSQLiteDriver_CreateStoreIsIdempotent(t *testing.T) {
	d := NewSQLiteDriver(t.TempDir())
	ctx := context.Background()

	require.NoError(t, d.CreateStore(ctx, nil, "tenant_a_1"))
	require.NoError(t, d.CreateStore(ctx, nil, "tenant_a_1"))

	_, err := os.Stat(d.Path("tenant_a_1"))
	assert.NoError(t, err)

	assert.Error(t, d.CreateStore(ctx, nil, "../escape"))
}

func TestConnectAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLiteDir: t.TempDir(), DBName: "control", PoolMaxOpen: 10}
	d := NewSQLiteDriver(cfg.SQLiteDir)
	ctx := context.Background()

	db, err := Connect(ctx, d, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, MigrateControl(db))
	require.NoError(t, MigrateControl(db))
	require.NoError(t, Ping(ctx, db))

	assert.True(t, db.Migrator().HasTable(&models.SuperAdmin{}))
	assert.True(t, db.Migrator().HasTable(&models.Admin{}))
	assert.False(t, db.Migrator().HasTable(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestSuperAdminSingletonEnforcedByEngine(t *testing.T) {
	cfg := &config.Config{SQLiteDir: t.TempDir(), DBName: "control"}
	d := NewSQLiteDriver(cfg.SQLiteDir)

	db, err := Connect(context.Background(), d, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	require.NoError(t, MigrateControl(db))

	require.NoError(t, db.Create(&models.SuperAdmin{Email: "a@x.com", Password: "h", Singleton: true}).Error)
	err = db.Create(&models.SuperAdmin{Email: "other@x.com", Password: "h", Singleton: true}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
