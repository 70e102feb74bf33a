package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cadence/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// habitRepoStub is a stub for repository.HabitRepository.
type habitRepoStub struct {
	createFn             func(context.Context, *models.Habit) error
	getByIDFn            func(context.Context, uint, string) (*models.Habit, error)
	getWithCompletionsFn func(context.Context, uint, string) (*models.Habit, error)
	listByUserFn         func(context.Context, uint) ([]*models.Habit, error)
	updateFn             func(context.Context, *models.Habit) error
	upsertCompletionFn   func(context.Context, string, time.Time, bool, string) (*models.HabitCompletion, error)
	removeCompletionFn   func(context.Context, string, time.Time) error
}

func (s *habitRepoStub) Create(ctx context.Context, habit *models.Habit) error {
	return s.createFn(ctx, habit)
}
func (s *habitRepoStub) GetByID(ctx context.Context, userID uint, id string) (*models.Habit, error) {
	return s.getByIDFn(ctx, userID, id)
}
func (s *habitRepoStub) GetWithCompletions(ctx context.Context, userID uint, id string) (*models.Habit, error) {
	return s.getWithCompletionsFn(ctx, userID, id)
}
func (s *habitRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Habit, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *habitRepoStub) Update(ctx context.Context, habit *models.Habit) error {
	return s.updateFn(ctx, habit)
}
func (s *habitRepoStub) UpsertCompletion(ctx context.Context, habitID string, date time.Time, completed bool, notes string) (*models.HabitCompletion, error) {
	return s.upsertCompletionFn(ctx, habitID, date, completed, notes)
}
func (s *habitRepoStub) RemoveCompletion(ctx context.Context, habitID string, date time.Time) error {
	return s.removeCompletionFn(ctx, habitID, date)
}

func noopHabitRepo() *habitRepoStub {
	return &habitRepoStub{
		createFn:             func(_ context.Context, _ *models.Habit) error { return nil },
		getByIDFn:            func(_ context.Context, _ uint, _ string) (*models.Habit, error) { return &models.Habit{}, nil },
		getWithCompletionsFn: func(_ context.Context, _ uint, _ string) (*models.Habit, error) { return &models.Habit{}, nil },
		listByUserFn:         func(_ context.Context, _ uint) ([]*models.Habit, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Habit) error { return nil },
		upsertCompletionFn: func(_ context.Context, _ string, _ time.Time, _ bool, _ string) (*models.HabitCompletion, error) {
			return &models.HabitCompletion{}, nil
		},
		removeCompletionFn: func(_ context.Context, _ string, _ time.Time) error { return nil },
	}
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestHabitService_CreateHabit(t *testing.T) {
	ctx := context.Background()

	t.Run("AppliesDefaults", func(t *testing.T) {
		repo := noopHabitRepo()
		var created *models.Habit
		repo.createFn = func(_ context.Context, h *models.Habit) error {
			created = h
			return nil
		}
		svc := NewHabitService(repo, fixedClock("2024-01-01"))

		habit, err := svc.CreateHabit(ctx, CreateHabitInput{
			UserID:   1,
			Name:     "Morning run",
			Category: "fitness",
		})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEmpty(t, habit.ID)
		assert.Equal(t, models.FrequencyDaily, habit.Frequency)
		assert.Equal(t, models.DefaultIconName, habit.IconName)
		assert.Equal(t, models.DefaultColor, habit.Color)
		assert.True(t, habit.IsActive)
		require.NotNil(t, habit.Stats)
		assert.Equal(t, 0, habit.Stats.Streak)
	})

	t.Run("RejectsShortName", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		_, err := svc.CreateHabit(ctx, CreateHabitInput{UserID: 1, Name: "x", Category: "health"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("RejectsBadFrequency", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		_, err := svc.CreateHabit(ctx, CreateHabitInput{UserID: 1, Name: "Run", Category: "health", Frequency: "yearly"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("RejectsUnknownCategory", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		_, err := svc.CreateHabit(ctx, CreateHabitInput{UserID: 1, Name: "Run", Category: "sports"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("RejectsBadColor", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		_, err := svc.CreateHabit(ctx, CreateHabitInput{UserID: 1, Name: "Run", Category: "health", Color: "blue"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}

func TestHabitService_GetHabit(t *testing.T) {
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		repo := noopHabitRepo()
		repo.getWithCompletionsFn = func(_ context.Context, _ uint, _ string) (*models.Habit, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewHabitService(repo, nil)

		_, err := svc.GetHabit(ctx, 1, "missing")
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("AttachesStatsAndTrims", func(t *testing.T) {
		now := fixedClock("2024-02-01")
		habit := &models.Habit{ID: "h1", CreatedAt: now().AddDate(0, 0, -40)}
		for i := 0; i < 40; i++ {
			habit.Completions = append(habit.Completions, models.HabitCompletion{
				Date:      now().AddDate(0, 0, -i),
				Completed: true,
			})
		}
		repo := noopHabitRepo()
		repo.getWithCompletionsFn = func(_ context.Context, _ uint, _ string) (*models.Habit, error) {
			return habit, nil
		}
		svc := NewHabitService(repo, now)

		got, err := svc.GetHabit(ctx, 1, "h1")
		require.NoError(t, err)
		require.NotNil(t, got.Stats)
		// Stats reflect the full history even though the payload is trimmed.
		assert.Equal(t, 40, got.Stats.TotalCompletions)
		assert.Equal(t, 40, got.Stats.Streak)
		assert.Len(t, got.Completions, recentCompletions)
	})
}

func TestHabitService_UpdateHabit(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyFieldsUnchanged", func(t *testing.T) {
		existing := &models.Habit{
			ID: "h1", Name: "Read", Description: "30 pages",
			Frequency: models.FrequencyDaily, Category: "learning",
			IconName: "book", Color: "#112233",
		}
		repo := noopHabitRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ string) (*models.Habit, error) { return existing, nil }
		svc := NewHabitService(repo, nil)

		updated, err := svc.UpdateHabit(ctx, UpdateHabitInput{UserID: 1, HabitID: "h1", Name: "Read more"})
		require.NoError(t, err)
		assert.Equal(t, "Read more", updated.Name)
		assert.Equal(t, "30 pages", updated.Description)
		assert.Equal(t, "learning", updated.Category)
		assert.Equal(t, "#112233", updated.Color)
	})

	t.Run("ValidatesChangedFields", func(t *testing.T) {
		repo := noopHabitRepo()
		svc := NewHabitService(repo, nil)

		_, err := svc.UpdateHabit(ctx, UpdateHabitInput{UserID: 1, HabitID: "h1", Color: "nope"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := noopHabitRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ string) (*models.Habit, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewHabitService(repo, nil)

		_, err := svc.UpdateHabit(ctx, UpdateHabitInput{UserID: 1, HabitID: "gone", Name: "New name"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestHabitService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsBadDate", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		_, err := svc.Complete(ctx, CompletionInput{UserID: 1, HabitID: "h1", Date: "01/15/2024"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := noopHabitRepo()
		repo.getByIDFn = func(_ context.Context, _ uint, _ string) (*models.Habit, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := NewHabitService(repo, nil)

		_, err := svc.Complete(ctx, CompletionInput{UserID: 1, HabitID: "gone", Date: "2024-01-15"})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("PassesParsedDateAndNotes", func(t *testing.T) {
		repo := noopHabitRepo()
		var gotDate time.Time
		var gotNotes string
		repo.upsertCompletionFn = func(_ context.Context, _ string, date time.Time, completed bool, notes string) (*models.HabitCompletion, error) {
			gotDate = date
			gotNotes = notes
			assert.True(t, completed)
			return &models.HabitCompletion{Date: date, Completed: completed, Notes: notes}, nil
		}
		svc := NewHabitService(repo, nil)

		completion, err := svc.Complete(ctx, CompletionInput{UserID: 1, HabitID: "h1", Date: "2024-01-15", Notes: "easy"})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), gotDate)
		assert.Equal(t, "easy", gotNotes)
		assert.True(t, completion.Completed)
	})

	t.Run("RepoErrorIsInternal", func(t *testing.T) {
		repo := noopHabitRepo()
		repo.upsertCompletionFn = func(_ context.Context, _ string, _ time.Time, _ bool, _ string) (*models.HabitCompletion, error) {
			return nil, errors.New("disk full")
		}
		svc := NewHabitService(repo, nil)

		_, err := svc.Complete(ctx, CompletionInput{UserID: 1, HabitID: "h1", Date: "2024-01-15"})
		assertAppErrorCode(t, err, models.CodeInternal)
	})
}

func TestHabitService_Uncomplete(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsBadDate", func(t *testing.T) {
		svc := NewHabitService(noopHabitRepo(), nil)
		err := svc.Uncomplete(ctx, CompletionInput{UserID: 1, HabitID: "h1", Date: "yesterday"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("Succeeds", func(t *testing.T) {
		repo := noopHabitRepo()
		removed := false
		repo.removeCompletionFn = func(_ context.Context, _ string, _ time.Time) error {
			removed = true
			return nil
		}
		svc := NewHabitService(repo, nil)

		err := svc.Uncomplete(ctx, CompletionInput{UserID: 1, HabitID: "h1", Date: "2024-01-15"})
		require.NoError(t, err)
		assert.True(t, removed)
	})
}

func TestHabitService_ListHabits(t *testing.T) {
	ctx := context.Background()
	now := fixedClock("2024-01-10")

	repo := noopHabitRepo()
	repo.listByUserFn = func(_ context.Context, _ uint) ([]*models.Habit, error) {
		return []*models.Habit{
			{
				ID:        "h1",
				CreatedAt: now().AddDate(0, 0, -10),
				Completions: []models.HabitCompletion{
					{Date: now(), Completed: true},
					{Date: now().AddDate(0, 0, -1), Completed: true},
				},
			},
		}, nil
	}
	svc := NewHabitService(repo, now)

	habits, err := svc.ListHabits(ctx, 1)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	require.NotNil(t, habits[0].Stats)
	assert.Equal(t, 2, habits[0].Stats.Streak)
	assert.True(t, habits[0].Stats.CompletedToday)
	assert.Equal(t, 20, habits[0].Stats.SuccessRate)
}
