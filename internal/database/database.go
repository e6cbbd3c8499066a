package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolOptions bound each store's connection pool. Callers beyond
// MaxOpenConns wait for a free connection rather than failing.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func PoolOptionsFrom(cfg *config.Config) PoolOptions {
	return PoolOptions{
		MaxOpenConns:    cfg.PoolMaxOpen,
		MaxIdleConns:    cfg.PoolMaxIdle,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}
}

// Open returns a pooled handle bound to one store and verifies it is reachable.
func Open(ctx context.Context, driver Driver, store string, opts PoolOptions) (*gorm.DB, error) {
	db, err := gorm.Open(driver.Dialector(store), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store %s: %w", store, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach store %s: %w", store, err)
	}
	return db, nil
}

// Connect creates the control store if needed and opens its pool.
func Connect(ctx context.Context, driver Driver, cfg *config.Config) (*gorm.DB, error) {
	if err := driver.Bootstrap(ctx, cfg.DBName); err != nil {
		return nil, fmt.Errorf("failed to initialize control store: %w", err)
	}

	db, err := Open(ctx, driver, cfg.DBName, PoolOptionsFrom(cfg))
	if err != nil {
		return nil, err
	}

	slog.Info("control store connected", "driver", driver.Name(), "store", cfg.DBName)
	return db, nil
}

// MigrateControl creates the super-admin, admin registry and log tables.
func MigrateControl(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.SuperAdmin{},
		&models.Admin{},
		&models.SystemLog{},
	)
}

// MigrateTenant creates the users table. Safe to run repeatedly.
func MigrateTenant(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
