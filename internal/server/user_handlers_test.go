package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestGetMyProfile(t *testing.T) {
	env := setupHandlerTest(t)

	resp, body := doJSON(t, env.app, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "test@example.com", body["email"])
	_, exposed := body["password"]
	assert.False(t, exposed)
}

func TestUpdateMyProfile(t *testing.T) {
	env := setupHandlerTest(t)

	t.Run("Success", func(t *testing.T) {
		resp, body := doJSON(t, env.app, http.MethodPut, "/api/users/me", map[string]string{
			"name":  "Renamed User",
			"email": "renamed@example.com",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Renamed User", body["name"])
		assert.Equal(t, "renamed@example.com", body["email"])
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		resp, _ := doJSON(t, env.app, http.MethodPut, "/api/users/me", map[string]string{
			"name":  "Valid Name",
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestChangeMyPassword(t *testing.T) {
	env := setupHandlerTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Original1pass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(env.user).Update("password", string(hash)).Error)

	t.Run("WrongCurrentPassword", func(t *testing.T) {
		resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/me/password", map[string]string{
			"current_password": "Nope1nope",
			"new_password":     "Fresh1password",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["code"])
	})

	t.Run("Success", func(t *testing.T) {
		resp, _ := doJSON(t, env.app, http.MethodPost, "/api/users/me/password", map[string]string{
			"current_password": "Original1pass",
			"new_password":     "Fresh1password",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
