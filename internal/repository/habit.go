package repository

import (
	"context"
	"errors"
	"time"

	"cadence/internal/models"
	"cadence/internal/stats"

	"gorm.io/gorm"
)

// HabitRepository defines the interface for active habit data operations.
type HabitRepository interface {
	Create(ctx context.Context, habit *models.Habit) error
	GetByID(ctx context.Context, userID uint, id string) (*models.Habit, error)
	GetWithCompletions(ctx context.Context, userID uint, id string) (*models.Habit, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Habit, error)
	Update(ctx context.Context, habit *models.Habit) error
	UpsertCompletion(ctx context.Context, habitID string, date time.Time, completed bool, notes string) (*models.HabitCompletion, error)
	RemoveCompletion(ctx context.Context, habitID string, date time.Time) error
}

type habitRepository struct {
	db *gorm.DB
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(ctx context.Context, habit *models.Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *habitRepository) GetByID(ctx context.Context, userID uint, id string) (*models.Habit, error) {
	var habit models.Habit
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) GetWithCompletions(ctx context.Context, userID uint, id string) (*models.Habit, error) {
	var habit models.Habit
	err := r.db.WithContext(ctx).
		Preload("Completions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Habit, error) {
	var habits []*models.Habit
	err := r.db.WithContext(ctx).
		Preload("Completions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *models.Habit) error {
	return r.db.WithContext(ctx).Save(habit).Error
}

// UpsertCompletion creates or updates the completion row for (habit, day).
// The date is normalized to its calendar day; an empty notes value
// preserves whatever notes are already stored.
func (r *habitRepository) UpsertCompletion(ctx context.Context, habitID string, date time.Time, completed bool, notes string) (*models.HabitCompletion, error) {
	day := stats.Day(date)

	var completion models.HabitCompletion
	err := r.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, day).
		First(&completion).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		completion = models.HabitCompletion{
			HabitID:   habitID,
			Date:      day,
			Completed: completed,
			Notes:     notes,
		}
		if err := r.db.WithContext(ctx).Create(&completion).Error; err != nil {
			return nil, err
		}
		return &completion, nil
	}
	if err != nil {
		return nil, err
	}

	completion.Completed = completed
	if notes != "" {
		completion.Notes = notes
	}
	if err := r.db.WithContext(ctx).Save(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// RemoveCompletion deletes any completion rows for (habit, day).
// Zero matches is not an error.
func (r *habitRepository) RemoveCompletion(ctx context.Context, habitID string, date time.Time) error {
	day := stats.Day(date)
	return r.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, day).
		Delete(&models.HabitCompletion{}).Error
}
