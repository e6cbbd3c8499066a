package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
)

type CreateAdminRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

func (r *CreateAdminRequest) Validate() error {
	v := newValidator()
	r.Email = v.email("email", r.Email)
	v.password("password", r.Password)
	r.CompanyName = v.length("companyName", "Company name", r.CompanyName, 2, 100)
	return v.err()
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	v := newValidator()
	if !r.Status.Valid() {
		v.add("status", "Status must be active or inactive")
	}
	return v.err()
}

type SuperAdminResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSuperAdminResponse(sa *models.SuperAdmin) SuperAdminResponse {
	return SuperAdminResponse{ID: sa.ID, Email: sa.Email, CreatedAt: sa.CreatedAt}
}

type AdminResponse struct {
	ID           uint          `json:"id"`
	Email        string        `json:"email"`
	CompanyName  string        `json:"companyName"`
	DatabaseName string        `json:"databaseName"`
	CreatedBy    uint          `json:"createdBy"`
	Status       models.Status `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func NewAdminResponse(a *models.Admin) AdminResponse {
	return AdminResponse{
		ID:           a.ID,
		Email:        a.Email,
		CompanyName:  a.CompanyName,
		DatabaseName: a.DatabaseName,
		CreatedBy:    a.CreatedBy,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func NewAdminResponses(admins []models.Admin) []AdminResponse {
	out := make([]AdminResponse, len(admins))
	for i := range admins {
		out[i] = NewAdminResponse(&admins[i])
	}
	return out
}
