package tenant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/metrics"
)

// Provisioner creates tenant stores and their schema.
type Provisioner struct {
	registry *Registry
}

func NewProvisioner(registry *Registry) *Provisioner {
	return &Provisioner{registry: registry}
}

// Provision ensures store id exists and holds the users table. Calling it
// again for the same id is a no-op.
func (p *Provisioner) Provision(ctx context.Context, id string) (err error) {
	defer func() { metrics.RecordProvision(err) }()

	if !database.ValidStoreName(id) {
		return fmt.Errorf("invalid store identifier %q", id)
	}

	if err := p.registry.Driver().CreateStore(ctx, p.registry.Control(), id); err != nil {
		return fmt.Errorf("failed to create tenant store: %w", err)
	}

	db, err := p.registry.Tenant(ctx, id)
	if err != nil {
		return err
	}

	if err := database.MigrateTenant(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to migrate tenant store %s: %w", id, err)
	}

	slog.Info("tenant store provisioned", "tenant", id)
	return nil
}
