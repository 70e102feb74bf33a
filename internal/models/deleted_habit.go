// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DeletedHabit is the archived copy of a habit. Rows are duplicated at
// archive time rather than referenced, so the active habit row can be
// hard-deleted immediately. OriginalID keeps the identity needed to
// restore the habit under its old ID.
type DeletedHabit struct {
	ID          string                   `gorm:"primaryKey;size:36" json:"id"`
	OriginalID  string                   `gorm:"size:36;not null;index" json:"original_id"`
	Name        string                   `gorm:"not null" json:"name"`
	Description string                   `gorm:"size:500" json:"description,omitempty"`
	Frequency   string                   `gorm:"not null" json:"frequency"`
	Category    string                   `gorm:"not null" json:"category"`
	IconName    string                   `gorm:"not null" json:"icon_name"`
	Color       string                   `gorm:"size:7;not null" json:"color"`
	IsActive    bool                     `gorm:"not null" json:"is_active"`
	UserID      uint                     `gorm:"not null;index" json:"user_id"`
	Completions []DeletedHabitCompletion `gorm:"foreignKey:DeletedHabitID;constraint:OnDelete:CASCADE" json:"completions,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	// DeletedAt is the archival timestamp, not a gorm soft-delete marker.
	DeletedAt time.Time `gorm:"not null;index" json:"deleted_at"`
}

// DeletedHabitCompletion mirrors a HabitCompletion at archive time.
// CreatedAt is carried over verbatim so a restore reproduces history.
type DeletedHabitCompletion struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DeletedHabitID string    `gorm:"size:36;not null;index" json:"deleted_habit_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	Completed      bool      `gorm:"not null;default:false" json:"completed"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
