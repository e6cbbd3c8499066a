package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/tenant"
	"gorm.io/gorm"
)

// UserService operates on end-users of one tenant store. Every method
// takes the store handle resolved for the caller and touches nothing else.
type UserService struct {
	hasher auth.Hasher
}

func NewUserService(hasher auth.Hasher) *UserService {
	return &UserService{hasher: hasher}
}

func (s *UserService) CreateUser(ctx context.Context, db *gorm.DB, creatorID uint, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	db = db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Scopes(tenant.ByEmail(req.Email)).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Conflict(apperr.MsgUserExists)
	}

	hash, err := hashPassword(s.hasher, req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     req.Email,
		Password:  hash,
		Name:      req.Name,
		CreatedBy: creatorID,
		Status:    models.StatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict(apperr.MsgUserExists)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	resp := dto.NewUserResponse(&user)
	return &resp, nil
}

func (s *UserService) ListUsers(ctx context.Context, db *gorm.DB) ([]dto.UserResponse, error) {
	var users []models.User
	if err := db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *UserService) GetUser(ctx context.Context, db *gorm.DB, id uint) (*dto.UserResponse, error) {
	user, err := s.find(ctx, db, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *UserService) SetUserStatus(ctx context.Context, db *gorm.DB, id uint, status models.Status) (*dto.UserResponse, error) {
	if !status.Valid() {
		return nil, apperr.Validation(map[string]string{"status": "Status must be active or inactive"})
	}
	user, err := s.find(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(user).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	user.Status = status
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetProfile returns the calling user's own record.
func (s *UserService) GetProfile(ctx context.Context, db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	return s.GetUser(ctx, db, userID)
}

// UpdateProfile changes the display name only.
func (s *UserService) UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.find(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(user).Update("name", req.Name).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	user.Name = req.Name
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ChangePassword replaces the verifier only if current matches it.
func (s *UserService) ChangePassword(ctx context.Context, db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.find(ctx, db, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.Password, req.CurrentPassword) {
		return apperr.BadRequest(apperr.MsgWrongPassword)
	}

	hash, err := hashPassword(s.hasher, req.NewPassword)
	if err != nil {
		return err
	}
	if err := db.WithContext(ctx).Model(user).Update("password", hash).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserService) find(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundAs(err, apperr.NotFound(apperr.MsgUserNotFound))
	}
	return &user, nil
}
