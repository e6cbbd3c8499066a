package handlers

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// SuperAdminHandler serves /api/super-admin.
type SuperAdminHandler struct {
	authService  *services.AuthService
	adminService *services.AdminService
}

func NewSuperAdminHandler(authService *services.AuthService, adminService *services.AdminService) *SuperAdminHandler {
	return &SuperAdminHandler{authService: authService, adminService: adminService}
}

func (h *SuperAdminHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterSuperAdminRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.authService.RegisterSuperAdmin(c.UserContext(), &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *SuperAdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.authService.LoginSuperAdmin(c.UserContext(), &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *SuperAdminHandler) CreateAdmin(c *fiber.Ctx) error {
	claims, err := tenant.GetClaims(c)
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.CreateAdminRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.adminService.CreateAdmin(c.UserContext(), claims.PrincipalID, &req)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *SuperAdminHandler) ListAdmins(c *fiber.Ctx) error {
	resp, err := h.adminService.ListAdmins(c.UserContext())
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *SuperAdminHandler) GetAdmin(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.adminService.GetAdmin(c.UserContext(), id)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}

func (h *SuperAdminHandler) UpdateAdminStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.RespondError(c, err)
	}

	var req dto.UpdateStatusRequest
	if err := parseBody(c, &req); err != nil {
		return middleware.RespondError(c, err)
	}

	resp, err := h.adminService.SetAdminStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return middleware.RespondError(c, err)
	}
	return c.JSON(resp)
}
