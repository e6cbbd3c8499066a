package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/metrics"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Registry owns the control-store pool and one lazily opened pool per
// tenant store. It is built once at startup and shared by every request.
// Pools live until Close; nothing is evicted.
type Registry struct {
	driver  database.Driver
	opts    database.PoolOptions
	control *gorm.DB

	mu    sync.RWMutex
	pools map[string]*gorm.DB
	group singleflight.Group
}

func NewRegistry(driver database.Driver, control *gorm.DB, opts database.PoolOptions) *Registry {
	return &Registry{
		driver:  driver,
		opts:    opts,
		control: control,
		pools:   make(map[string]*gorm.DB),
	}
}

// Control returns the process-wide control-store handle.
func (r *Registry) Control() *gorm.DB {
	return r.control
}

// Driver returns the storage driver the registry opens pools with.
func (r *Registry) Driver() database.Driver {
	return r.driver
}

// Tenant returns the pool bound to store id, opening it on first use.
// Concurrent first callers for the same id share a single open; every
// caller sees the same handle afterwards. Open failures are not cached.
func (r *Registry) Tenant(ctx context.Context, id string) (*gorm.DB, error) {
	if !database.ValidStoreName(id) {
		return nil, apperr.BadRequest(apperr.MsgInvalidTenant)
	}

	if db, ok := r.lookup(id); ok {
		return db, nil
	}

	v, err, _ := r.group.Do(id, func() (interface{}, error) {
		if db, ok := r.lookup(id); ok {
			return db, nil
		}

		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		db, err := database.Open(context.WithoutCancel(ctx), r.driver, id, r.opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open tenant pool: %w", err)
		}

		r.mu.Lock()
		r.pools[id] = db
		n := len(r.pools)
		r.mu.Unlock()

		metrics.TenantPools.Set(float64(n))
		slog.Info("tenant pool opened", "tenant", id, "pools", n)
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

func (r *Registry) lookup(id string) (*gorm.DB, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db, ok := r.pools[id]
	return db, ok
}

// Has reports whether a pool for id is already open.
func (r *Registry) Has(id string) bool {
	_, ok := r.lookup(id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pools)
}

// Identifiers returns the ids of all open tenant pools, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.pools))
	for id := range r.pools {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Close closes every tenant pool and then the control pool.
func (r *Registry) Close() error {
	r.mu.Lock()
	pools := r.pools
	r.pools = make(map[string]*gorm.DB)
	r.mu.Unlock()
	metrics.TenantPools.Set(0)

	var errs []error
	for id, db := range pools {
		if err := database.Close(db); err != nil {
			errs = append(errs, fmt.Errorf("close tenant pool %s: %w", id, err))
		}
	}
	if err := database.Close(r.control); err != nil {
		errs = append(errs, fmt.Errorf("close control pool: %w", err))
	}
	return errors.Join(errs...)
}
