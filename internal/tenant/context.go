package tenant

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	claimsKey = "claims"
	dbKey     = "tenant_db"
	storeKey  = "tenant"
)

func SetClaims(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals(claimsKey, claims)
}

// GetClaims returns the verified claims attached by the JWT middleware.
func GetClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := c.Locals(claimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, apperr.Unauthorized(apperr.MsgUnauthorized)
	}
	return claims, nil
}

// SetDB attaches the store handle every downstream operation must use.
func SetDB(c *fiber.Ctx, storeID string, db *gorm.DB) {
	c.Locals(storeKey, storeID)
	c.Locals(dbKey, db)
}

func GetDB(c *fiber.Ctx) (*gorm.DB, error) {
	db, ok := c.Locals(dbKey).(*gorm.DB)
	if !ok || db == nil {
		return nil, apperr.BadRequest(apperr.MsgTenantNotSpecified)
	}
	return db.WithContext(c.UserContext()), nil
}

// GetStoreID returns the identifier of the attached store, or "" for the control store.
func GetStoreID(c *fiber.Ctx) string {
	if id, ok := c.Locals(storeKey).(string); ok {
		return id
	}
	return ""
}
