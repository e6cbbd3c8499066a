package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// UserHandler serves /api/users.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// Login expects middleware.TenantFromHeader to have attached the store.
func (h *UserHandler) Login(c *fiber.Ctx) error {
	db, err := tenant.GetDB(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.authService.LoginUser(c.UserContext(), db, tenant.GetStoreID(c), &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	claims, db, err := session(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.GetProfile(c.UserContext(), db, claims.PrincipalID)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, db, err := session(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.UpdateProfile(c.UserContext(), db, claims.PrincipalID, &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	claims, db, err := session(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	if err := h.userService.ChangePassword(c.UserContext(), db, claims.PrincipalID, &req); err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}
