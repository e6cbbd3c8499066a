package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves /api/admins. User operations run against the
// admin's own store, attached by middleware.Scope.
type AdminHandler struct {
	authService  *services.AuthService
	adminService *services.AdminService
	userService  *services.UserService
}

func NewAdminHandler(authService *services.AuthService, adminService *services.AdminService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{authService: authService, adminService: adminService, userService: userService}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.authService.LoginAdmin(c.UserContext(), &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) Profile(c *fiber.Ctx) error {
	claims, err := tenant.GetClaims(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.adminService.GetProfile(c.UserContext(), claims.PrincipalID)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	claims, err := tenant.GetClaims(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	db, err := tenant.GetDB(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.CreateUser(c.UserContext(), db, claims.PrincipalID, &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	db, err := tenant.GetDB(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.ListUsers(c.UserContext(), db)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.RespondError(c, err)
	}
	db, err := tenant.GetDB(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.GetUser(c.UserContext(), db, id)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.RespondError(c, err)
	}
	db, err := tenant.GetDB(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.userService.SetUserStatus(c.UserContext(), db, id, req.Status)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}
