// Package service provides the business logic layer for accounts, wishlists, and gifting.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/giftwell/giftwell-server/internal/auth"
	"github.com/giftwell/giftwell-server/internal/domain"
	"github.com/giftwell/giftwell-server/internal/errors"
	"github.com/giftwell/giftwell-server/internal/id"
	"github.com/giftwell/giftwell-server/internal/store"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(st store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  st,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account and returns the user with an access token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*domain.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", errors.Validation(err.Error())
	}

	userID, err := id.Generate("usr")
	if err != nil {
		return nil, "", fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, "", errors.AlreadyExists("an account with this email already exists")
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user registered", slog.String("user_id", user.ID))

	return user, token, nil
}

// Login verifies credentials and returns the user with an access token.
// The same error is returned for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", errors.InvalidCredentials("invalid email or password")
		}
		return nil, "", fmt.Errorf("get user by email: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, "", errors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// VerifyToken validates an access token and loads the user it belongs to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}
