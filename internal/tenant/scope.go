package tenant

import (
	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/models"
	"gorm.io/gorm"
)

// Active returns a GORM scope that keeps only rows with status active.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", models.StatusActive)
	}
}

// ByEmail returns a GORM scope that filters by email.
func ByEmail(email string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ?", email)
	}
}
