package auth

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// Claims is the signed session payload.
// DatabaseName binds admin and user sessions to exactly one tenant store.
type Claims struct {
	PrincipalID  uint   `json:"id"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	DatabaseName string `json:"databaseName,omitempty"`
	jwt.RegisteredClaims
}
