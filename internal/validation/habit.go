// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"time"

	"cadence/internal/models"
)

const (
	minHabitNameLen   = 2
	maxHabitNameLen   = 100
	maxDescriptionLen = 500
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHabitName checks the habit name length bounds.
func ValidateHabitName(name string) error {
	if len(name) < minHabitNameLen {
		return fmt.Errorf("habit name must contain at least %d characters", minHabitNameLen)
	}
	if len(name) > maxHabitNameLen {
		return fmt.Errorf("habit name must not exceed %d characters", maxHabitNameLen)
	}
	return nil
}

// ValidateDescription checks the optional description length bound.
func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", maxDescriptionLen)
	}
	return nil
}

// ValidateFrequency checks that the frequency is one of the allowed values.
func ValidateFrequency(frequency string) error {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly:
		return nil
	}
	return fmt.Errorf("frequency must be daily, weekly or monthly")
}

// ValidateCategory checks that the category belongs to the fixed set.
func ValidateCategory(category string) error {
	for _, c := range models.Categories {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("invalid category %q", category)
}

// ValidateColor checks that the color is a 6-digit hex string.
func ValidateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("color must be in hexadecimal format (#RRGGBB)")
	}
	return nil
}

// ValidateIconName checks that an icon name is present.
func ValidateIconName(iconName string) error {
	if iconName == "" {
		return fmt.Errorf("icon name is required")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date string into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format (expected YYYY-MM-DD)")
	}
	return t, nil
}
