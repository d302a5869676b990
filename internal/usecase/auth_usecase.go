package usecase

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/usecase/dto"
)

// AuthUseCase - use case сессионной аутентификации
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	logger      *zap.Logger
	sessionTTL  time.Duration
}

// NewAuthUseCase - создание нового AuthUseCase
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	logger *zap.Logger,
	sessionTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
		sessionTTL:  sessionTTL,
	}
}

// Login проверяет учётные данные и открывает сессию. Неизвестное имя и
// неверный пароль дают один и тот же ответ.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		return nil, errors.ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := uc.sessionRepo.Create(ctx, token, user.Username, uc.sessionTTL); err != nil {
		return nil, err
	}

	uc.logger.Info("User logged in", zap.String("username", user.Username))

	return &dto.LoginResponse{
		Token:    token,
		Username: user.Username,
	}, nil
}

// Logout завершает сессию. Отсутствующая сессия не считается ошибкой.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, token)
}

// Resolve превращает токен сессии в Principal; (nil, nil) для неизвестного
// или истёкшего токена.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, nil
	}

	username, err := uc.sessionRepo.GetUsername(ctx, token)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, nil
	}

	return &domain.Principal{Username: username}, nil
}
