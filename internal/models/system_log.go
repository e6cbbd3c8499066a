package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog is an ERROR+ log record persisted in the control store.
type SystemLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
	Level       string         `gorm:"size:10;not null;index" json:"level"`
	Message     string         `gorm:"type:text" json:"message"`
	Tenant      string         `gorm:"size:63;index" json:"tenant"`
	RequestID   string         `gorm:"size:36;index" json:"requestId"`
	PrincipalID *string        `gorm:"size:20" json:"principalId"`
	Role        string         `gorm:"size:20" json:"role"`
	Path        string         `gorm:"size:255" json:"path"`
	Error       string         `gorm:"type:text" json:"error"`
	Extra       datatypes.JSON `json:"extra"`
	CreatedAt   time.Time      `json:"createdAt"`
}
