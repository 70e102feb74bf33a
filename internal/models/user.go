// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Cadence application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Habits    []Habit        `gorm:"foreignKey:UserID" json:"habits,omitempty"`
	Deleted   []DeletedHabit `gorm:"foreignKey:UserID" json:"-"`
}
