package server

import (
	"net/http"
	"testing"

	"cadence/internal/config"
	"cadence/internal/models"
	"cadence/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		db:       db,
		userRepo: repository.NewUserRepository(db),
	}

	app := fiber.New()
	app.Post("/signup", s.Signup)
	app.Post("/login", s.Login)
	return app, db
}

func TestSignup(t *testing.T) {
	app, _ := setupAuthTest(t)

	t.Run("Success", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"name":     "Test User",
			"email":    "new@example.com",
			"password": "Password123",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, body["token"])

		user := body["user"].(map[string]any)
		assert.Equal(t, "new@example.com", user["email"])
		// The password hash never leaves the server.
		_, exposed := user["password"]
		assert.False(t, exposed)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"name":     "Other User",
			"email":    "new@example.com",
			"password": "Password123",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", body["code"])
	})

	t.Run("MissingFields", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"email": "only@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
			"name":     "Weak User",
			"email":    "weak@example.com",
			"password": "password",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, db := setupAuthTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Name:     "Login User",
		Email:    "login@example.com",
		Password: string(hash),
	}).Error)

	t.Run("Success", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "login@example.com",
			"password": "Password123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		resp, body := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "login@example.com",
			"password": "WrongPassword1",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", body["code"])
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/login", map[string]string{
			"email":    "ghost@example.com",
			"password": "Password123",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
