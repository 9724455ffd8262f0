package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperadmin
}

// Admin represents a backend user who manages products and prices.
// Rows are hard-deleted: the last-superadmin guard counts real rows.
type Admin struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string     `json:"role" gorm:"size:50;not null;default:'admin';index"`
	IsActive     bool       `json:"isActive" gorm:"default:true;index"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsSuperadmin reports whether the admin holds the superadmin role.
func (a *Admin) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}
