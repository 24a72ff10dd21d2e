package api

import (
	"crypto/rand"
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/giftwell-server/internal/auth"
	"github.com/giftwell/giftwell-server/internal/config"
	"github.com/giftwell/giftwell-server/internal/realtime"
	"github.com/giftwell/giftwell-server/internal/service"
	"github.com/giftwell/giftwell-server/internal/store/sqlite"
)

// testServer bundles the API under test with direct access to its internals.
type testServer struct {
	server   *Server
	api      humatest.TestAPI
	registry *realtime.Registry
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	registry := realtime.NewRegistry(logger)
	broadcaster := service.NewBroadcaster(st, registry, logger)

	services := &Services{
		Auth:     service.NewAuthService(st, tokens, logger),
		Wishlist: service.NewWishlistService(st, broadcaster, logger),
		Gifting:  service.NewGiftingService(st, broadcaster, logger),
	}

	wsHandler := realtime.NewHandler(registry, services.Wishlist, logger, nil)

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
	server := NewServer(cfg, services, wsHandler, logger)

	return &testServer{
		server:   server,
		api:      humatest.Wrap(t, server.api),
		registry: registry,
	}
}

// registerTestUser creates an account through the API and returns its token.
func (ts *testServer) registerTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        email,
		"display_name": "Test User",
		"password":     "a secure password",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)

	var healthResp HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &healthResp))
	assert.Equal(t, "healthy", healthResp.Status)
}
