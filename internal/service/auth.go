package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/repository"
	"segurauto-backend/internal/security"
)

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
	log    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    logger.WithService("auth"),
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.UserRoleCustomer,
		CreatedOn:    now,
		UpdatedOn:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// A missing account and a bad password report identically.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", domain.ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", domain.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", domain.ErrUnauthorized
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", domain.ErrUnauthorized
	}

	// Re-read the user so a role change takes effect on the next rotation.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.ErrUnauthorized
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
