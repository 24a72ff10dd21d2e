package auth

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftwell/giftwell-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	svc, err := NewTokenService(key, ttl)
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	user := &domain.User{ID: "usr-1", Email: "alice@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)
	user := &domain.User{ID: "usr-1", Email: "alice@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	svcA := newTestTokenService(t, time.Hour)
	svcB := newTestTokenService(t, time.Hour)
	user := &domain.User{ID: "usr-1", Email: "alice@example.com"}

	token, err := svcA.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svcB.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenServiceRejectsShortKey(t *testing.T) {
	_, err := NewTokenService([]byte("too short"), time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Key file has restricted permissions.
	info, err := os.Stat(filepath.Join(dir, "auth.key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second load returns the same key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

func TestLoadOrGenerateKeyRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth.key"), []byte("garbage"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}
