package middleware

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected verifies the bearer token and stores its claims for the
// handlers. A missing header, a bad signature or an expired token all
// end the request with 401.
func JWTProtected(tokens *auth.TokenManager) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc: tokens.Keyfunc,
		Claims:  &auth.Claims{},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return RespondError(c, apperr.Unauthorized(apperr.MsgInvalidToken))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return RespondError(c, apperr.Unauthorized(apperr.MsgInvalidToken))
			}
			if err := auth.ValidateClaims(claims); err != nil {
				return RespondError(c, err)
			}
			tenant.SetClaims(c, claims)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return RespondError(c, apperr.Wrap(apperr.KindUnauthorized, apperr.MsgInvalidToken, err))
		},
	})
}
