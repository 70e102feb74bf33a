package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cadence/internal/config"
	"cadence/internal/models"
	"cadence/internal/repository"
	"cadence/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testClock is the reference "today" used by handler tests so streak
// assertions stay deterministic.
var testClock = func() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	server *Server
	user   *models.User
}

// setupHandlerTest builds a server backed by an in-memory database, with
// routes mounted behind a middleware that injects the test user identity.
func setupHandlerTest(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.DeletedHabit{},
		&models.DeletedHabitCompletion{},
	))

	user := &models.User{Name: "Test User", Email: "test@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	habitRepo := repository.NewHabitRepository(db)
	deletedRepo := repository.NewDeletedHabitRepository(db)
	userRepo := repository.NewUserRepository(db)

	s := &Server{
		config:      &config.Config{JWTSecret: "test_secret"},
		db:          db,
		userRepo:    userRepo,
		habitRepo:   habitRepo,
		deletedRepo: deletedRepo,
	}
	s.habitService = service.NewHabitService(habitRepo, testClock)
	s.archiveService = service.NewArchiveService(habitRepo, deletedRepo)
	s.userService = service.NewUserService(userRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", user.ID)
		return c.Next()
	})

	habits := app.Group("/api/habits")
	habits.Get("/", s.GetHabits)
	habits.Post("/", s.CreateHabit)
	habits.Post("/:id/complete", s.CompleteHabit)
	habits.Delete("/:id/complete", s.UncompleteHabit)
	habits.Get("/:id/stats", s.GetHabitStats)
	habits.Get("/:id", s.GetHabit)
	habits.Put("/:id", s.UpdateHabit)
	habits.Delete("/:id", s.ArchiveHabit)

	deleted := app.Group("/api/deleted-habits")
	deleted.Get("/", s.GetDeletedHabits)
	deleted.Post("/:id/restore", s.RestoreHabit)
	deleted.Delete("/:id", s.PurgeHabit)

	users := app.Group("/api/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Post("/me/password", s.ChangeMyPassword)

	return &testEnv{app: app, db: db, server: s, user: user}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	var parsed map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}
