package tenant

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProvision_IsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	p := NewProvisioner(r)
	id := GenerateStoreIdentifier("Acme Co")

	require.NoError(t, p.Provision(ctx, id))

	db, err := r.Tenant(ctx, id)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Email: "c@x.com", Password: "h", Name: "Carl", CreatedBy: 1, Status: models.StatusActive}).Error)

	require.NoError(t, p.Provision(ctx, id))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "re-provisioning must not touch existing rows")
}

func TestProvision_CreatesUsersSchemaOnly(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	id := "tenant_schema_1"

	require.NoError(t, NewProvisioner(r).Provision(ctx, id))

	db, err := r.Tenant(ctx, id)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.False(t, db.Migrator().HasTable(&models.Admin{}))
	assert.False(t, db.Migrator().HasTable(&models.SuperAdmin{}))
}

func TestProvision_UserEmailUniqueWithinStore(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	id := "tenant_unique_1"
	require.NoError(t, NewProvisioner(r).Provision(ctx, id))

	db, err := r.Tenant(ctx, id)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.User{Email: "c@x.com", Password: "h", Name: "Carl", CreatedBy: 1, Status: models.StatusActive}).Error)
	err = db.Create(&models.User{Email: "c@x.com", Password: "h", Name: "Carl", CreatedBy: 1, Status: models.StatusActive}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProvision_RejectsInvalidIdentifier(t *testing.T) {
	r := newTestRegistry(t)

	err := NewProvisioner(r).Provision(context.Background(), "Bad Name")

	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}
