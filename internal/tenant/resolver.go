package tenant

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"gorm.io/gorm"
)

// Resolver maps authenticated principals to the one store they may touch.
type Resolver struct {
	registry *Registry
}

func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Authorize re-checks, on every request, that the principal behind a
// still-valid token exists and is active. Deactivating an admin therefore
// locks out tokens issued before the change.
func (r *Resolver) Authorize(ctx context.Context, claims *auth.Claims) error {
	control := r.registry.Control().WithContext(ctx)

	switch claims.Role {
	case auth.RoleSuperAdmin:
		var count int64
		if err := control.Model(&models.SuperAdmin{}).Where("id = ?", claims.PrincipalID).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count == 0 {
			return apperr.Forbidden(apperr.MsgAccessDenied)
		}
		return nil

	case auth.RoleAdmin:
		admin, err := r.activeAdmin(ctx, "id = ?", claims.PrincipalID)
		if err != nil {
			return err
		}
		if claims.DatabaseName != "" && claims.DatabaseName != admin.DatabaseName {
			return apperr.Forbidden(apperr.MsgAccessDenied)
		}
		return nil

	case auth.RoleUser:
		if claims.DatabaseName == "" {
			return apperr.BadRequest(apperr.MsgTenantNotSpecified)
		}
		if _, err := r.activeAdmin(ctx, "database_name = ?", claims.DatabaseName); err != nil {
			return err
		}
		db, err := r.registry.Tenant(ctx, claims.DatabaseName)
		if err != nil {
			return err
		}
		var user models.User
		err = db.WithContext(ctx).Scopes(Active(), ByEmail(claims.Email)).
			First(&user, "id = ?", claims.PrincipalID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Forbidden(apperr.MsgAccessDenied)
		}
		if err != nil {
			return apperr.Internal(err)
		}
		return nil
	}

	return apperr.Forbidden(apperr.MsgAccessDenied)
}

// Resolve returns the store identifier and handle for claims. Super-admins
// get the control store and an empty identifier; admins and users get the
// pool of their own tenant store and nothing else.
func (r *Resolver) Resolve(ctx context.Context, claims *auth.Claims) (string, *gorm.DB, error) {
	switch claims.Role {
	case auth.RoleSuperAdmin:
		return "", r.registry.Control(), nil

	case auth.RoleAdmin:
		id := claims.DatabaseName
		if id == "" {
			admin, err := r.activeAdmin(ctx, "id = ?", claims.PrincipalID)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindForbidden {
					return "", nil, apperr.BadRequest(apperr.MsgTenantNotSpecified)
				}
				return "", nil, err
			}
			id = admin.DatabaseName
		}
		return r.tenant(ctx, id)

	case auth.RoleUser:
		if claims.DatabaseName == "" {
			return "", nil, apperr.BadRequest(apperr.MsgTenantNotSpecified)
		}
		return r.tenant(ctx, claims.DatabaseName)
	}

	return "", nil, apperr.Forbidden(apperr.MsgAccessDenied)
}

// ResolveByIdentifier binds an unauthenticated request (end-user login) to
// the store named by the caller. The store must belong to an active admin.
func (r *Resolver) ResolveByIdentifier(ctx context.Context, id string) (*gorm.DB, error) {
	if !database.ValidStoreName(id) {
		return nil, apperr.BadRequest(apperr.MsgInvalidTenant)
	}
	if _, err := r.activeAdmin(ctx, "database_name = ?", id); err != nil {
		if apperr.KindOf(err) == apperr.KindForbidden {
			return nil, apperr.BadRequest(apperr.MsgInvalidTenant)
		}
		return nil, err
	}
	_, db, err := r.tenant(ctx, id)
	return db, err
}

func (r *Resolver) tenant(ctx context.Context, id string) (string, *gorm.DB, error) {
	db, err := r.registry.Tenant(ctx, id)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			return "", nil, err
		}
		return "", nil, apperr.Internal(err)
	}
	return id, db, nil
}

func (r *Resolver) activeAdmin(ctx context.Context, query string, arg interface{}) (*models.Admin, error) {
	var admin models.Admin
	err := r.registry.Control().WithContext(ctx).Scopes(Active()).Where(query, arg).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden(apperr.MsgAccessDenied)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &admin, nil
}
