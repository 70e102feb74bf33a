// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Habit frequencies.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Defaults applied when a habit is created without explicit values.
const (
	DefaultIconName = "heart"
	DefaultColor    = "#3b82f6"
)

// Categories is the fixed set of habit categories.
var Categories = []string{
	"health",
	"fitness",
	"learning",
	"productivity",
	"lifestyle",
	"creativity",
	"mindfulness",
	"social",
	"finance",
	"nature",
}

// Habit represents an active, trackable routine owned by a user.
// The ID is assigned by the application (not the database) because it must
// survive the archive/restore round trip with identity preserved.
type Habit struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `gorm:"size:500" json:"description,omitempty"`
	Frequency   string            `gorm:"not null;default:daily" json:"frequency"`
	Category    string            `gorm:"not null" json:"category"`
	IconName    string            `gorm:"not null;default:heart" json:"icon_name"`
	Color       string            `gorm:"size:7;not null" json:"color"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	Completions []HabitCompletion `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"completions,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	// Stats is computed at read time; never persisted.
	Stats *HabitStats `gorm:"-" json:"stats,omitempty"`
}

// HabitCompletion records whether a habit was done on one calendar day.
// Date is normalized to UTC midnight; at most one row exists per
// (habit, date) pair.
type HabitCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HabitID   string    `gorm:"size:36;not null;uniqueIndex:idx_habit_completion_day" json:"habit_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_habit_completion_day" json:"date"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitStats carries the derived numbers for one habit.
type HabitStats struct {
	Streak           int  `json:"streak"`
	CompletedToday   bool `json:"completed_today"`
	SuccessRate      int  `json:"success_rate"`
	TotalCompletions int  `json:"total_completions"`
}
