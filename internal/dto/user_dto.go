package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *CreateUserRequest) Validate() error {
	v := newValidator()
	r.Email = v.email("email", r.Email)
	v.password("password", r.Password)
	r.Name = v.length("name", "Name", r.Name, 2, 100)
	return v.err()
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

func (r *UpdateProfileRequest) Validate() error {
	v := newValidator()
	r.Name = v.length("name", "Name", r.Name, 2, 100)
	return v.err()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *ChangePasswordRequest) Validate() error {
	v := newValidator()
	v.required("currentPassword", "Current password", r.CurrentPassword)
	v.password("newPassword", r.NewPassword)
	return v.err()
}

type UserResponse struct {
	ID        uint          `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	CreatedBy uint          `json:"createdBy"`
	Status    models.Status `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedBy: u.CreatedBy,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
