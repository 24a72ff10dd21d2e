package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "alice@example.com",
		"display_name": "Alice",
		"password":     "SecurePassword123",
	})

	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "alice@example.com", body.User.Email)
	assert.Equal(t, "Alice", body.User.DisplayName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "alice@example.com",
		"display_name": "Clone",
		"password":     "AnotherPassword1",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "invalid email format",
			body: map[string]any{
				"email":        "not-an-email",
				"display_name": "Alice",
				"password":     "SecurePassword123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			body: map[string]any{
				"email":        "alice@example.com",
				"display_name": "Alice",
				"password":     "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "empty display name",
			body: map[string]any{
				"email":        "alice@example.com",
				"display_name": "",
				"password":     "SecurePassword123",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/v1/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "a secure password",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)
	ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong password",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetCurrentUser(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.registerTestUser(t, "alice@example.com")

	resp := ts.api.Get("/api/v1/auth/me", bearer(token))

	assert.Equal(t, http.StatusOK, resp.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body.Email)
}

func TestGetCurrentUser_Unauthorized(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/auth/me")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/auth/me", "Authorization: Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
