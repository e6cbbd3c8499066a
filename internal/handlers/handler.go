package handlers

import (
	"strconv"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// validatable is implemented by every request DTO.
type validatable interface {
	Validate() error
}

// parseBody decodes and validates the JSON body into req.
func parseBody(c *fiber.Ctx, req validatable) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	return req.Validate()
}

// parseID reads a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(map[string]string{name: "ID must be a positive integer"})
	}
	return uint(id), nil
}

// session returns the caller's claims and the store attached for them.
func session(c *fiber.Ctx) (*auth.Claims, *gorm.DB, error) {
	claims, err := tenant.GetClaims(c)
	if err != nil {
		return nil, nil, err
	}
	db, err := tenant.GetDB(c)
	if err != nil {
		return nil, nil, err
	}
	return claims, db, nil
}
