package auth

import (
	"context"
)

// AuthService defines authentication business logic
type AuthService interface {
	// Register creates a company and its first admin user in one transaction
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)

	// Login verifies credentials and issues access and refresh tokens
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the given refresh token
	Logout(ctx context.Context, refreshToken string) error
}
