package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Weekday identifiers accepted in a company's working days.
const (
	Monday    = "MON"
	Tuesday   = "TUE"
	Wednesday = "WED"
	Thursday  = "THU"
	Friday    = "FRI"
	Saturday  = "SAT"
	Sunday    = "SUN"
)

// EncodeWorkingDays serializes days as a JSON array, keeping their order.
func EncodeWorkingDays(days []string) (datatypes.JSON, error) {
	if days == nil {
		days = []string{}
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encode working days: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// DecodeWorkingDays is the inverse of EncodeWorkingDays. An unset column
// decodes to an empty slice.
func DecodeWorkingDays(raw datatypes.JSON) ([]string, error) {
	days := []string{}
	if len(raw) == 0 || string(raw) == "null" {
		return days, nil
	}
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("decode working days: %w", err)
	}
	return days, nil
}
