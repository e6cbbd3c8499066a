package models

import "time"

// Admin is a tenant owner registered in the control store. DatabaseName is
// the store-identifier of the admin's dedicated tenant store; it is written
// once on create and never updated.
type Admin struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string      `gorm:"size:255;not null" json:"-"`
	CompanyName  string      `gorm:"size:255;not null" json:"companyName"`
	DatabaseName string      `gorm:"<-:create;size:63;not null;uniqueIndex" json:"databaseName"`
	CreatedBy    uint        `gorm:"not null;index" json:"createdBy"`
	Creator      *SuperAdmin `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status       Status      `gorm:"size:10;not null;index" json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (Admin) TableName() string { return "admins" }

func (a *Admin) Active() bool { return a.Status == StatusActive }
