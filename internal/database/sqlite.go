package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriver keeps each store in its own file under Dir. Used for local
// development and tests.
type SQLiteDriver struct {
	Dir string
}

func NewSQLiteDriver(dir string) *SQLiteDriver {
	return &SQLiteDriver{Dir: dir}
}

func (d *SQLiteDriver) Name() string { return config.DriverSQLite }

func (d *SQLiteDriver) Path(store string) string {
	return filepath.Join(d.Dir, store+".db")
}

func (d *SQLiteDriver) Dialector(store string) gorm.Dialector {
	return sqlite.Open(d.Path(store) + "?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL")
}

func (d *SQLiteDriver) CreateStore(_ context.Context, _ *gorm.DB, store string) error {
	if !ValidStoreName(store) {
		return fmt.Errorf("invalid store name %q", store)
	}
	if err := os.MkdirAll(d.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	f, err := os.OpenFile(d.Path(store), os.O_RDWR|os.O_CREATE, 0o640)
	if err != nil {
		return fmt.Errorf("failed to create store %s: %w", store, err)
	}
	return f.Close()
}

func (d *SQLiteDriver) Bootstrap(ctx context.Context, store string) error {
	return d.CreateStore(ctx, nil, store)
}
