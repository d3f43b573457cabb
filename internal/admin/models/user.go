package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the permission level of a user inside their company.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// User is both the resolved caller and the employee whose allowance is adjusted.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// ExternalID is the subject issued by the identity provider.
	ExternalID string    `gorm:"size:255;uniqueIndex;not null"`
	Role       Role      `gorm:"size:32;not null"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null"`
	// AvailableDays is the remaining leave allowance.
	AvailableDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllowanceUpdate overwrites an employee's available leave days.
type AllowanceUpdate struct {
	EmployeeID    uuid.UUID `validate:"required"`
	AvailableDays int       `validate:"min=0"`
}
