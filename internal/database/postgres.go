package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDriver places every store in its own Postgres database on one server.
type PostgresDriver struct {
	cfg *config.Config
}

func NewPostgresDriver(cfg *config.Config) *PostgresDriver {
	return &PostgresDriver{cfg: cfg}
}

func (d *PostgresDriver) Name() string { return config.DriverPostgres }

func (d *PostgresDriver) Dialector(store string) gorm.Dialector {
	return postgres.Open(d.cfg.DSN(store))
}

func (d *PostgresDriver) CreateStore(ctx context.Context, conn *gorm.DB, store string) error {
	if !ValidStoreName(store) {
		return fmt.Errorf("invalid store name %q", store)
	}

	exists, err := d.exists(ctx, conn, store)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// CREATE DATABASE cannot take bind parameters; store is pattern-checked above.
	if err := conn.WithContext(ctx).Exec(`CREATE DATABASE "` + store + `"`).Error; err != nil {
		// A concurrent creator may have won the race.
		if again, checkErr := d.exists(ctx, conn, store); checkErr == nil && again {
			return nil
		}
		return fmt.Errorf("failed to create database %s: %w", store, err)
	}

	slog.Info("database created", "tenant", store)
	return nil
}

func (d *PostgresDriver) Bootstrap(ctx context.Context, store string) error {
	conn, err := gorm.Open(d.Dialector(d.cfg.MaintenanceDB), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	return d.CreateStore(ctx, conn, store)
}

func (d *PostgresDriver) exists(ctx context.Context, conn *gorm.DB, store string) (bool, error) {
	var count int64
	err := conn.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", store).
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up database %s: %w", store, err)
	}
	return count > 0, nil
}
