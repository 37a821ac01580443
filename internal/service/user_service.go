package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo UserStore
	logger   *zap.Logger
}

func NewUserService(userRepo UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует пользователя или обновляет его профиль
func (s *UserService) RegisterUser(ctx context.Context, profile model.User) (*model.User, error) {
	existing, err := s.userRepo.GetByTelegramID(ctx, profile.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if err := s.userRepo.UpdateProfile(ctx, &profile); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &profile, nil
	}

	user := profile
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("telegram_id", user.TelegramID),
		zap.String("username", user.Username),
	)

	return &user, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}
