package models

import (
	"time"

	"github.com/google/uuid"
)

// Actor roles
const (
	RoleBrand   = "brand"
	RoleAgency  = "agency"
	RoleCreator = "creator"
)

func IsValidRole(role string) bool {
	return role == RoleBrand || role == RoleAgency || role == RoleCreator
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}
