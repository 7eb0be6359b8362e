package models

import (
	"time"
)

// Role defines allowed roles in the system
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleFiscal   Role = "FISCAL"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleFiscal:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null;default:'OPERATOR'"`
	PasswordHash string    `json:"-" gorm:"not null"`
	AssignedCity *string   `json:"assigned_city"`
	CreatedAt    time.Time `json:"created_at"`
}
