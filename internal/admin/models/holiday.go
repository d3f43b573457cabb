package models

import (
	"time"

	"github.com/google/uuid"
)

// CompanyHoliday is a non-working date declared by a company.
type CompanyHoliday struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:255;not null"`
	Date        time.Time `gorm:"type:date;not null;index"`
	IsRecurring bool      `gorm:"not null"`
	// CompanyID never changes after creation.
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HolidayInput holds the fields of a new holiday.
type HolidayInput struct {
	Name        string    `validate:"required,max=255"`
	Date        time.Time `validate:"required"`
	IsRecurring bool
}

// HolidayUpdate replaces the editable fields of an existing holiday.
type HolidayUpdate struct {
	ID          uuid.UUID `validate:"required"`
	Name        string    `validate:"required,max=255"`
	Date        time.Time `validate:"required"`
	IsRecurring bool
}

// CalendarDate keeps the year, month and day of t as written in its own
// location and returns that day at midnight UTC.
func CalendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
