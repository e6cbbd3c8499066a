package models

import "time"

// SuperAdmin is the control-store singleton. Singleton is always true and
// carries a unique index, so the engine itself refuses a second row.
type SuperAdmin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Singleton bool      `gorm:"not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SuperAdmin) TableName() string { return "super_admin" }
