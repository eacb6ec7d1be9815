package service

import (
	"context"
	"log/slog"
	"time"

	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/repository"
)

type userService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users: users,
		log:   logger.WithService("user"),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, name, phone string, birthDate *domain.Date) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	if birthDate != nil {
		user.BirthDate = birthDate
	}
	user.UpdatedOn = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.users.List(ctx, page, pageSize)
}
