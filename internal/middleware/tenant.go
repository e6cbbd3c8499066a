package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// TenantHeader is the HTTP header an unauthenticated end-user sends to name
// the tenant store it belongs to.
const TenantHeader = "X-Tenant-ID"

// TenantFromHeader binds pre-login requests to the store named in
// X-Tenant-ID. The store must belong to an active admin.
func TenantFromHeader(resolver *tenant.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(TenantHeader))
		if id == "" {
			return RespondError(c, apperr.BadRequest(apperr.MsgTenantNotSpecified))
		}

		db, err := resolver.ResolveByIdentifier(c.UserContext(), id)
		if err != nil {
			return RespondError(c, err)
		}
		tenant.SetDB(c, id, db)
		return c.Next()
	}
}
