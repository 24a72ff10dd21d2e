package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/projection"
)

// authenticateRequest validates the Authorization header and returns the user.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (*domain.User, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, err := s.services.Auth.VerifyToken(ctx, parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return user, nil
}

// viewerFromHeader resolves the optional Authorization header into a
// projection viewer. A missing or invalid token yields the anonymous
// viewer rather than an error, since shared links work without login.
func (s *Server) viewerFromHeader(ctx context.Context, authHeader string) projection.Viewer {
	if authHeader == "" {
		return projection.Anonymous()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return projection.Anonymous()
	}

	user, err := s.services.Auth.VerifyToken(ctx, parts[1])
	if err != nil {
		return projection.Anonymous()
	}
	return projection.ForUser(user.ID)
}

// clientKey picks the best available client identifier for rate limiting.
func clientKey(forwardedFor, realIP string) string {
	if forwardedFor != "" {
		// First hop is the original client.
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			return strings.TrimSpace(forwardedFor[:i])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP != "" {
		return realIP
	}
	return "unknown"
}
