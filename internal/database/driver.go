package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/config"
	"gorm.io/gorm"
)

// Store names double as database/file names and are interpolated into DDL,
// so they are restricted to characters that never need escaping.
var storeNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,63}$`)

func ValidStoreName(name string) bool {
	return storeNamePattern.MatchString(name)
}

// Driver binds the service to one storage engine. Each store (the control
// store and every tenant store) is a separate physical database.
type Driver interface {
	Name() string
	// Dialector returns a GORM dialector connected to the named store.
	Dialector(store string) gorm.Dialector
	// CreateStore creates the named store if it does not exist. conn is any
	// open handle on the same engine; drivers that need none ignore it.
	CreateStore(ctx context.Context, conn *gorm.DB, store string) error
	// Bootstrap creates the named store without an existing handle. Used
	// once for the control store at startup.
	Bootstrap(ctx context.Context, store string) error
}

func NewDriver(cfg *config.Config) (Driver, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, "":
		return NewPostgresDriver(cfg), nil
	case config.DriverSQLite:
		return NewSQLiteDriver(cfg.SQLiteDir), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
