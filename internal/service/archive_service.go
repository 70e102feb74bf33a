package service

import (
	"context"
	"errors"

	"cadence/internal/cache"
	"cadence/internal/models"
	"cadence/internal/observability"
	"cadence/internal/repository"

	"gorm.io/gorm"
)

// ArchiveService manages the archived side of the habit lifecycle:
// listing, restoring and purging, plus the archive transition itself.
type ArchiveService struct {
	habitRepo   repository.HabitRepository
	deletedRepo repository.DeletedHabitRepository
}

func NewArchiveService(habitRepo repository.HabitRepository, deletedRepo repository.DeletedHabitRepository) *ArchiveService {
	return &ArchiveService{habitRepo: habitRepo, deletedRepo: deletedRepo}
}

// Archive moves an active habit and its completion history into the
// archive. The copy and the delete commit together or not at all.
func (s *ArchiveService) Archive(ctx context.Context, userID uint, habitID string) (*models.DeletedHabit, error) {
	habit, err := s.habitRepo.GetWithCompletions(ctx, userID, habitID)
	if err != nil {
		return nil, habitLookupError(err, habitID)
	}

	archived, err := s.deletedRepo.Archive(ctx, habit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.HabitTransitions.WithLabelValues("archive").Inc()
	cache.InvalidateHabits(ctx, userID)
	return archived, nil
}

// ListDeleted returns the user's archived habits, most recently archived
// first, with completion payloads capped like the active list.
func (s *ArchiveService) ListDeleted(ctx context.Context, userID uint) ([]*models.DeletedHabit, error) {
	var deleted []*models.DeletedHabit
	err := cache.Aside(ctx, cache.DeletedHabitsKey(userID), &deleted, cache.DeletedHabitsTTL, func() error {
		fetched, fetchErr := s.deletedRepo.ListByUser(ctx, userID)
		if fetchErr != nil {
			return fetchErr
		}
		for _, d := range fetched {
			if len(d.Completions) > recentCompletions {
				d.Completions = d.Completions[:recentCompletions]
			}
		}
		deleted = fetched
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return deleted, nil
}

// Restore reconstructs the active habit under its original ID. It fails
// with Conflict when an active habit already holds that ID; the archive
// entity is left untouched in that case.
func (s *ArchiveService) Restore(ctx context.Context, userID uint, deletedHabitID string) (*models.Habit, error) {
	deleted, err := s.deletedRepo.GetByID(ctx, userID, deletedHabitID)
	if err != nil {
		return nil, deletedLookupError(err, deletedHabitID)
	}

	restored, err := s.deletedRepo.Restore(ctx, deleted)
	if err != nil {
		if errors.Is(err, repository.ErrRestoreConflict) {
			return nil, models.NewConflictError("An active habit with this ID already exists")
		}
		return nil, models.NewInternalError(err)
	}

	observability.HabitTransitions.WithLabelValues("restore").Inc()
	cache.InvalidateHabits(ctx, userID)
	return restored, nil
}

// Purge permanently deletes an archived habit and its history. Terminal:
// the record cannot be restored afterwards.
func (s *ArchiveService) Purge(ctx context.Context, userID uint, deletedHabitID string) error {
	deleted, err := s.deletedRepo.GetByID(ctx, userID, deletedHabitID)
	if err != nil {
		return deletedLookupError(err, deletedHabitID)
	}

	if err := s.deletedRepo.Purge(ctx, deleted); err != nil {
		return models.NewInternalError(err)
	}

	observability.HabitTransitions.WithLabelValues("purge").Inc()
	cache.InvalidateHabits(ctx, userID)
	return nil
}

func deletedLookupError(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Deleted habit", id)
	}
	return models.NewInternalError(err)
}
