// Package models defines the entities the admin gateway reads and writes,
// configured for GORM, together with the inputs accepted by each operation.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Company is the tenant that owns users and holidays.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the company’s display name.
	Name string `gorm:"size:255;not null"`
	// Website is optional.
	Website *string `gorm:"size:2048"`
	// Logo is an optional image URL.
	Logo *string `gorm:"size:2048"`
	// WorkingDays holds the weekday identifiers as a JSON array.
	WorkingDays datatypes.JSON
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time
}

// CompanyProfileUpdate carries a profile change. Website and Logo are only
// written when set, so omitted optional fields keep their stored value.
type CompanyProfileUpdate struct {
	Name    string  `validate:"required,max=255"`
	Website *string `validate:"omitempty,url,max=2048"`
	Logo    *string `validate:"omitempty,max=2048"`
}

// WorkingDaysUpdate is the ordered set of weekdays the company works on.
type WorkingDaysUpdate struct {
	Days []string `validate:"unique,dive,oneof=MON TUE WED THU FRI SAT SUN"`
}

// CompanySettings is the read view of a company with working days decoded.
type CompanySettings struct {
	ID          uuid.UUID
	Name        string
	Website     *string
	Logo        *string
	WorkingDays []string
}

// Result is returned by operations that have no record to hand back.
type Result struct {
	Success bool
}
