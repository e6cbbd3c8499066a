package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"gorm.io/gorm"
)

// AdminService manages tenant owners in the control store.
type AdminService struct {
	registry    *tenant.Registry
	provisioner *tenant.Provisioner
	hasher      auth.Hasher
	ids         *tenant.IdentifierGenerator
}

func NewAdminService(registry *tenant.Registry, provisioner *tenant.Provisioner, hasher auth.Hasher, ids *tenant.IdentifierGenerator) *AdminService {
	return &AdminService{registry: registry, provisioner: provisioner, hasher: hasher, ids: ids}
}

// CreateAdmin provisions a fresh tenant store and then records its owner.
// If the insert fails the store is left behind unreferenced.
func (s *AdminService) CreateAdmin(ctx context.Context, creatorID uint, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	db := s.registry.Control().WithContext(ctx)

	var count int64
	if err := db.Model(&models.Admin{}).Scopes(tenant.ByEmail(req.Email)).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.MsgAdminExists)
	}

	// Hash first so a rejected password never leaves a store behind.
	hash, err := hashPassword(s.hasher, req.Password)
	if err != nil {
		return nil, err
	}

	storeID := s.ids.Generate(req.CompanyName)
	if err := s.provisioner.Provision(ctx, storeID); err != nil {
		slog.Error("tenant provisioning failed", "tenant", storeID, "error", err)
		return nil, apperr.Internal(err)
	}

	admin := models.Admin{
		Email:        req.Email,
		Password:     hash,
		CompanyName:  req.CompanyName,
		DatabaseName: storeID,
		CreatedBy:    creatorID,
		Status:       models.StatusActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(apperr.MsgAdminExists)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create admin: %w", err))
	}

	slog.Info("admin created", "principal_id", admin.ID, "tenant", storeID)
	resp := dto.NewAdminResponse(&admin)
	return &resp, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]dto.AdminResponse, error) {
	var admins []models.Admin
	if err := s.registry.Control().WithContext(ctx).Order("created_at DESC, id DESC").Find(&admins).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return dto.NewAdminResponses(admins), nil
}

func (s *AdminService) GetAdmin(ctx context.Context, id uint) (*dto.AdminResponse, error) {
	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAdminResponse(admin)
	return &resp, nil
}

// SetAdminStatus activates or deactivates an admin. Deactivation takes
// effect on the admin's next request, whatever tokens it holds.
func (s *AdminService) SetAdminStatus(ctx context.Context, id uint, status models.Status) (*dto.AdminResponse, error) {
	if !status.Valid() {
		return nil, apperr.Validation(map[string]string{"status": "Status must be active or inactive"})
	}
	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Control().WithContext(ctx).Model(admin).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	admin.Status = status

	slog.Info("admin status changed", "principal_id", admin.ID, "tenant", admin.DatabaseName, "status", status)
	resp := dto.NewAdminResponse(admin)
	return &resp, nil
}

// Reprovision re-runs store provisioning for an existing admin. It repairs
// a store or schema that went missing and is a no-op otherwise.
func (s *AdminService) Reprovision(ctx context.Context, id uint) (*dto.AdminResponse, error) {
	admin, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.provisioner.Provision(ctx, admin.DatabaseName); err != nil {
		return nil, apperr.Internal(err)
	}
	resp := dto.NewAdminResponse(admin)
	return &resp, nil
}

// GetProfile returns the calling admin's own record.
func (s *AdminService) GetProfile(ctx context.Context, adminID uint) (*dto.AdminResponse, error) {
	return s.GetAdmin(ctx, adminID)
}

func (s *AdminService) find(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.registry.Control().WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, notFoundAs(err, apperr.NotFound(apperr.MsgAdminNotFound))
	}
	return &admin, nil
}
