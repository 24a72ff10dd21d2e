package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/giftwell/giftwell-server/internal/domain"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/register",
		Summary:     "Register new user",
		Description: "Creates a new account and returns an access token.",
		Tags:        []string{"Authentication"},
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token.",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get current user",
		Description: "Returns the account behind the presented access token.",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// UserResponse contains public account data in API responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"Email address"`
	DisplayName string    `json:"display_name" doc:"Display name"`
	CreatedAt   time.Time `json:"created_at" doc:"Account creation time"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email,max=254" doc:"Email address"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100" doc:"Display name"`
	Password    string `json:"password" validate:"required,min=8,max=1024" doc:"Password"`
}

// RegisterInput wraps the register request for Huma.
type RegisterInput struct {
	Body          RegisterRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

// AuthResponse contains the account and its access token.
type AuthResponse struct {
	User        UserResponse `json:"user" doc:"The account"`
	AccessToken string       `json:"access_token" doc:"PASETO access token"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	if !s.authRateLimiter.Allow(clientKey(input.XForwardedFor, input.XRealIP)) {
		return nil, huma.Error429TooManyRequests("Too many attempts, slow down")
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, token, err := s.services.Auth.Register(ctx, input.Body.Email, input.Body.DisplayName, input.Body.Password)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token,
	}}, nil
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254" doc:"Email address"`
	Password string `json:"password" validate:"required,max=1024" doc:"Password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if !s.authRateLimiter.Allow(clientKey(input.XForwardedFor, input.XRealIP)) {
		return nil, huma.Error429TooManyRequests("Too many attempts, slow down")
	}

	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	user, token, err := s.services.Auth.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Body: AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token,
	}}, nil
}

// CurrentUserInput carries the Authorization header for Huma.
type CurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// CurrentUserOutput wraps the current user response for Huma.
type CurrentUserOutput struct {
	Body UserResponse
}

func (s *Server) handleGetCurrentUser(ctx context.Context, input *CurrentUserInput) (*CurrentUserOutput, error) {
	user, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	return &CurrentUserOutput{Body: toUserResponse(user)}, nil
}
