package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperr.Unauthorized(apperr.MsgInvalidCredentials)

type AuthService struct {
	registry *tenant.Registry
	tokens   *auth.TokenManager
	hasher   auth.Hasher
}

func NewAuthService(registry *tenant.Registry, tokens *auth.TokenManager, hasher auth.Hasher) *AuthService {
	return &AuthService{registry: registry, tokens: tokens, hasher: hasher}
}

// RegisterSuperAdmin creates the one super-admin. A second call fails with
// Conflict, including when two calls race past the existence check.
func (s *AuthService) RegisterSuperAdmin(ctx context.Context, req *dto.RegisterSuperAdminRequest) (*dto.SuperAdminResponse, error) {
	db := s.registry.Control().WithContext(ctx)

	var count int64
	if err := db.Model(&models.SuperAdmin{}).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.MsgSuperAdminExists)
	}

	hash, err := hashPassword(s.hasher, req.Password)
	if err != nil {
		return nil, err
	}

	sa := models.SuperAdmin{Email: req.Email, Password: hash, Singleton: true}
	if err := db.Create(&sa).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(apperr.MsgSuperAdminExists)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create super admin: %w", err))
	}

	slog.Info("super admin registered", "principal_id", sa.ID)
	resp := dto.NewSuperAdminResponse(&sa)
	return &resp, nil
}

func (s *AuthService) LoginSuperAdmin(ctx context.Context, req *dto.LoginRequest) (resp *dto.LoginResponse, err error) {
	defer func() { metrics.RecordLogin(string(auth.RoleSuperAdmin), err == nil) }()

	var sa models.SuperAdmin
	if err := s.registry.Control().WithContext(ctx).Scopes(tenant.ByEmail(req.Email)).First(&sa).Error; err != nil {
		return nil, notFoundAs(err, errInvalidCredentials)
	}
	if !s.hasher.Verify(sa.Password, req.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{PrincipalID: sa.ID, Email: sa.Email, Role: auth.RoleSuperAdmin})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.LoginResponse{ID: sa.ID, Email: sa.Email, Role: string(auth.RoleSuperAdmin), Token: token}, nil
}

// LoginAdmin authenticates an active admin. The token names the admin's store.
func (s *AuthService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (resp *dto.LoginResponse, err error) {
	defer func() { metrics.RecordLogin(string(auth.RoleAdmin), err == nil) }()

	var admin models.Admin
	err = s.registry.Control().WithContext(ctx).
		Scopes(tenant.Active(), tenant.ByEmail(req.Email)).
		First(&admin).Error
	if err != nil {
		return nil, notFoundAs(err, errInvalidCredentials)
	}
	if !s.hasher.Verify(admin.Password, req.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{
		PrincipalID:  admin.ID,
		Email:        admin.Email,
		Role:         auth.RoleAdmin,
		DatabaseName: admin.DatabaseName,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.LoginResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		Role:        string(auth.RoleAdmin),
		CompanyName: admin.CompanyName,
		Token:       token,
	}, nil
}

// LoginUser authenticates an active end-user inside store storeID, whose
// handle the caller has already resolved.
func (s *AuthService) LoginUser(ctx context.Context, db *gorm.DB, storeID string, req *dto.LoginRequest) (resp *dto.LoginResponse, err error) {
	defer func() { metrics.RecordLogin(string(auth.RoleUser), err == nil) }()

	var user models.User
	if err := db.WithContext(ctx).Scopes(tenant.Active(), tenant.ByEmail(req.Email)).First(&user).Error; err != nil {
		return nil, notFoundAs(err, errInvalidCredentials)
	}
	if !s.hasher.Verify(user.Password, req.Password) {
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{
		PrincipalID:  user.ID,
		Email:        user.Email,
		Role:         auth.RoleUser,
		DatabaseName: storeID,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &dto.LoginResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(auth.RoleUser),
		Name:  user.Name,
		Token: token,
	}, nil
}

func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// notFoundAs maps a missing row to domainErr and anything else to Internal.
// hashPassword reports over-long input as a client error instead of an
// internal one.
func hashPassword(h auth.Hasher, password string) (string, error) {
	hash, err := h.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.BadRequest(apperr.MsgPasswordTooLong)
	}
	if err != nil {
		return "", apperr.Internal(err)
	}
	return hash, nil
}

func notFoundAs(err error, domainErr *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return apperr.Internal(err)
}
