package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type sessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSessionRepository(redis *Redis) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (r *sessionRepository) Create(ctx context.Context, token, username string, ttl time.Duration) error {
	err := r.client.Set(ctx, sessionKey(token), username, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to create session", zap.String("username", username), zap.Error(err))
		return errors.ErrCacheError
	}

	r.logger.Debug("Session created", zap.String("username", username), zap.Duration("ttl", ttl))
	return nil
}

func (r *sessionRepository) GetUsername(ctx context.Context, token string) (string, error) {
	username, err := r.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", nil // Unknown or expired session
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.Error(err))
		return "", errors.ErrCacheError
	}

	return username, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	err := r.client.Del(ctx, sessionKey(token)).Err()
	if err != nil {
		r.logger.Error("Failed to delete session", zap.Error(err))
		return errors.ErrCacheError
	}

	return nil
}
