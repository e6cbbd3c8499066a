package models

import "time"

// User lives in a tenant store. IDs and emails are unique within that store
// only. CreatedBy is the owning admin's id and is informational: the admin
// row lives in another store, so no foreign key exists.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	Status    Status    `gorm:"size:10;not null;index" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Active() bool { return u.Status == StatusActive }
