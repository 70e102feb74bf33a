// Package service contains the business logic orchestrating repositories
// and pure calculators on behalf of the HTTP handlers.
package service

import (
	"context"
	"errors"
	"time"

	"cadence/internal/cache"
	"cadence/internal/models"
	"cadence/internal/observability"
	"cadence/internal/repository"
	"cadence/internal/stats"
	"cadence/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recentCompletions caps how many completion rows a list/detail payload
// carries. Stats are always computed from the full history first.
const recentCompletions = 30

type HabitService struct {
	habitRepo repository.HabitRepository
	now       func() time.Time
}

type CreateHabitInput struct {
	UserID      uint
	Name        string
	Description string
	Frequency   string
	Category    string
	IconName    string
	Color       string
}

type UpdateHabitInput struct {
	UserID      uint
	HabitID     string
	Name        string
	Description string
	Frequency   string
	Category    string
	IconName    string
	Color       string
}

type CompletionInput struct {
	UserID  uint
	HabitID string
	Date    string
	Notes   string
}

// NewHabitService creates a habit service. A nil clock defaults to
// time.Now; tests inject a fixed clock for deterministic stats.
func NewHabitService(habitRepo repository.HabitRepository, now func() time.Time) *HabitService {
	if now == nil {
		now = time.Now
	}
	return &HabitService{habitRepo: habitRepo, now: now}
}

func (s *HabitService) CreateHabit(ctx context.Context, in CreateHabitInput) (*models.Habit, error) {
	if err := validation.ValidateHabitName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = models.FrequencyDaily
	}
	if err := validation.ValidateFrequency(frequency); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	iconName := in.IconName
	if iconName == "" {
		iconName = models.DefaultIconName
	}
	color := in.Color
	if color == "" {
		color = models.DefaultColor
	}
	if err := validation.ValidateColor(color); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	habit := &models.Habit{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Frequency:   frequency,
		Category:    in.Category,
		IconName:    iconName,
		Color:       color,
		IsActive:    true,
		UserID:      in.UserID,
	}
	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateHabits(ctx, in.UserID)
	habit.Stats = stats.Summarize(habit, s.now())
	return habit, nil
}

// ListHabits returns the user's active habits with derived stats attached
// and completion payloads capped to the most recent entries.
func (s *HabitService) ListHabits(ctx context.Context, userID uint) ([]*models.Habit, error) {
	var habits []*models.Habit
	err := cache.Aside(ctx, cache.HabitsKey(userID), &habits, cache.HabitsTTL, func() error {
		fetched, fetchErr := s.habitRepo.ListByUser(ctx, userID)
		if fetchErr != nil {
			return fetchErr
		}
		now := s.now()
		for _, h := range fetched {
			h.Stats = stats.Summarize(h, now)
			trimCompletions(h)
		}
		habits = fetched
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return habits, nil
}

func (s *HabitService) GetHabit(ctx context.Context, userID uint, habitID string) (*models.Habit, error) {
	habit, err := s.habitRepo.GetWithCompletions(ctx, userID, habitID)
	if err != nil {
		return nil, habitLookupError(err, habitID)
	}
	habit.Stats = stats.Summarize(habit, s.now())
	trimCompletions(habit)
	return habit, nil
}

// GetStats returns the derived statistics for one habit without the
// completion payload.
func (s *HabitService) GetStats(ctx context.Context, userID uint, habitID string) (*models.HabitStats, error) {
	habit, err := s.habitRepo.GetWithCompletions(ctx, userID, habitID)
	if err != nil {
		return nil, habitLookupError(err, habitID)
	}
	return stats.Summarize(habit, s.now()), nil
}

// UpdateHabit applies a partial update; empty fields are left unchanged.
func (s *HabitService) UpdateHabit(ctx context.Context, in UpdateHabitInput) (*models.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, in.UserID, in.HabitID)
	if err != nil {
		return nil, habitLookupError(err, in.HabitID)
	}

	if in.Name != "" {
		if err := validation.ValidateHabitName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		habit.Name = in.Name
	}
	if in.Description != "" {
		if err := validation.ValidateDescription(in.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		habit.Description = in.Description
	}
	if in.Frequency != "" {
		if err := validation.ValidateFrequency(in.Frequency); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		habit.Frequency = in.Frequency
	}
	if in.Category != "" {
		if err := validation.ValidateCategory(in.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		habit.Category = in.Category
	}
	if in.IconName != "" {
		habit.IconName = in.IconName
	}
	if in.Color != "" {
		if err := validation.ValidateColor(in.Color); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		habit.Color = in.Color
	}

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateHabits(ctx, in.UserID)
	return habit, nil
}

// Complete marks the habit done for the given calendar date, upserting the
// completion row. Existing notes survive when no new notes are supplied.
func (s *HabitService) Complete(ctx context.Context, in CompletionInput) (*models.HabitCompletion, error) {
	day, err := validation.ParseDate(in.Date)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.habitRepo.GetByID(ctx, in.UserID, in.HabitID); err != nil {
		return nil, habitLookupError(err, in.HabitID)
	}

	completion, err := s.habitRepo.UpsertCompletion(ctx, in.HabitID, day, true, in.Notes)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	observability.CompletionWrites.WithLabelValues("complete").Inc()
	cache.InvalidateHabits(ctx, in.UserID)
	return completion, nil
}

// Uncomplete removes the completion for the given calendar date. Removing
// a date that was never completed is a no-op.
func (s *HabitService) Uncomplete(ctx context.Context, in CompletionInput) error {
	day, err := validation.ParseDate(in.Date)
	if err != nil {
		return models.NewValidationError(err.Error())
	}

	if _, err := s.habitRepo.GetByID(ctx, in.UserID, in.HabitID); err != nil {
		return habitLookupError(err, in.HabitID)
	}

	if err := s.habitRepo.RemoveCompletion(ctx, in.HabitID, day); err != nil {
		return models.NewInternalError(err)
	}

	observability.CompletionWrites.WithLabelValues("uncomplete").Inc()
	cache.InvalidateHabits(ctx, in.UserID)
	return nil
}

func trimCompletions(h *models.Habit) {
	if len(h.Completions) > recentCompletions {
		h.Completions = h.Completions[:recentCompletions]
	}
}

func habitLookupError(err error, habitID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Habit", habitID)
	}
	return models.NewInternalError(err)
}
