package repository

import (
	"context"
	"errors"
	"time"

	"cadence/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRestoreConflict is returned by Restore when an active habit already
// exists under the archive's original ID. The archive row is left intact.
var ErrRestoreConflict = errors.New("active habit with the original id already exists")

// DeletedHabitRepository defines the interface for archived habit data
// operations, including the transactional archive/restore transitions.
type DeletedHabitRepository interface {
	GetByID(ctx context.Context, userID uint, id string) (*models.DeletedHabit, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.DeletedHabit, error)
	Archive(ctx context.Context, habit *models.Habit) (*models.DeletedHabit, error)
	Restore(ctx context.Context, deleted *models.DeletedHabit) (*models.Habit, error)
	Purge(ctx context.Context, deleted *models.DeletedHabit) error
}

type deletedHabitRepository struct {
	db *gorm.DB
}

// NewDeletedHabitRepository creates a new deleted habit repository
func NewDeletedHabitRepository(db *gorm.DB) DeletedHabitRepository {
	return &deletedHabitRepository{db: db}
}

func (r *deletedHabitRepository) GetByID(ctx context.Context, userID uint, id string) (*models.DeletedHabit, error) {
	var deleted models.DeletedHabit
	err := r.db.WithContext(ctx).
		Preload("Completions").
		Where("id = ? AND user_id = ?", id, userID).
		First(&deleted).Error
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *deletedHabitRepository) ListByUser(ctx context.Context, userID uint) ([]*models.DeletedHabit, error) {
	var deleted []*models.DeletedHabit
	err := r.db.WithContext(ctx).
		Preload("Completions", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Where("user_id = ?", userID).
		Order("deleted_at DESC").
		Find(&deleted).Error
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Archive duplicates the habit and its completion history into the archive
// tables and hard-deletes the active rows, all in one transaction. The
// destructive step only runs after the copies are written.
func (r *deletedHabitRepository) Archive(ctx context.Context, habit *models.Habit) (*models.DeletedHabit, error) {
	archived := &models.DeletedHabit{
		ID:          uuid.NewString(),
		OriginalID:  habit.ID,
		Name:        habit.Name,
		Description: habit.Description,
		Frequency:   habit.Frequency,
		Category:    habit.Category,
		IconName:    habit.IconName,
		Color:       habit.Color,
		IsActive:    habit.IsActive,
		UserID:      habit.UserID,
		CreatedAt:   habit.CreatedAt,
		UpdatedAt:   habit.UpdatedAt,
		DeletedAt:   time.Now().UTC(),
	}
	for _, c := range habit.Completions {
		archived.Completions = append(archived.Completions, models.DeletedHabitCompletion{
			Date:      c.Date,
			Completed: c.Completed,
			Notes:     c.Notes,
			CreatedAt: c.CreatedAt,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(archived).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Habit{}, "id = ?", habit.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return archived, nil
}

// Restore recreates the active habit under its original ID with its
// completion history verbatim, then deletes the archive rows. The conflict
// check runs inside the transaction so a concurrent restore cannot
// half-commit.
func (r *deletedHabitRepository) Restore(ctx context.Context, deleted *models.DeletedHabit) (*models.Habit, error) {
	restored := &models.Habit{
		ID:          deleted.OriginalID,
		Name:        deleted.Name,
		Description: deleted.Description,
		Frequency:   deleted.Frequency,
		Category:    deleted.Category,
		IconName:    deleted.IconName,
		Color:       deleted.Color,
		IsActive:    deleted.IsActive,
		UserID:      deleted.UserID,
		CreatedAt:   deleted.CreatedAt,
	}
	for _, c := range deleted.Completions {
		restored.Completions = append(restored.Completions, models.HabitCompletion{
			HabitID:   deleted.OriginalID,
			Date:      c.Date,
			Completed: c.Completed,
			Notes:     c.Notes,
			CreatedAt: c.CreatedAt,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Habit{}).
			Where("id = ? AND user_id = ?", deleted.OriginalID, deleted.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRestoreConflict
		}
		if err := tx.Create(restored).Error; err != nil {
			return err
		}
		if err := tx.Where("deleted_habit_id = ?", deleted.ID).Delete(&models.DeletedHabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DeletedHabit{}, "id = ?", deleted.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// Purge permanently removes the archive entity and its completions.
func (r *deletedHabitRepository) Purge(ctx context.Context, deleted *models.DeletedHabit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deleted_habit_id = ?", deleted.ID).Delete(&models.DeletedHabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DeletedHabit{}, "id = ?", deleted.ID).Error
	})
}
