package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/auth"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/company"
	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/user"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/database"
	"github.com/gestionale-hr/gestionale-backend-go/internal/pkg/jwt"
	"github.com/gestionale-hr/gestionale-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	jwtService      jwt.Service
	defaultTimezone string
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	companyRepo company.CompanyRepository,
	jwtService jwt.Service,
	defaultTimezone string,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepo,
		CompanyRepository: companyRepo,
		jwtService:        jwtService,
		defaultTimezone:   defaultTimezone,
	}
}

// Register implements auth.AuthService. The company and its first admin user
// are created in one transaction; a duplicate email rolls both back.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		createdCompany company.Company
		createdUser    user.User
	)
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		createdCompany, err = s.CompanyRepository.Create(txCtx, company.Company{
			Name:     req.CompanyName,
			Timezone: s.defaultTimezone,
		})
		if err != nil {
			return err
		}

		createdUser, err = s.UserRepository.Create(txCtx, user.User{
			CompanyID:    createdCompany.ID,
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			FullName:     req.FullName,
			Role:         user.RoleAdmin,
		})
		return err
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	tokens, err := s.issueTokens(createdUser)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		CompanyID: createdCompany.ID,
		UserID:    createdUser.ID,
		Tokens:    tokens,
	}, nil
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, nil, u.CompanyID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.jwtService.ValidateRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, nil, u.CompanyID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
