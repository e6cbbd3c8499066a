package middleware

import (
	"slices"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// Scope admits only the given roles, re-checks that the principal is still
// active and attaches the one store it may use. Must run after JWTProtected.
func Scope(resolver *tenant.Resolver, roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := tenant.GetClaims(c)
		if err != nil {
			return RespondError(c, err)
		}
		if !slices.Contains(roles, claims.Role) {
			return RespondError(c, apperr.Forbidden(apperr.MsgAccessDenied))
		}

		ctx := c.UserContext()
		if err := resolver.Authorize(ctx, claims); err != nil {
			return RespondError(c, err)
		}

		storeID, db, err := resolver.Resolve(ctx, claims)
		if err != nil {
			return RespondError(c, err)
		}
		tenant.SetDB(c, storeID, db)
		return c.Next()
	}
}
