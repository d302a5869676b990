package repository

import (
	"context"
	"time"
)

// SessionRepository - хранилище сессий. Ядро видит только отображение
// токен -> username и не заглядывает внутрь механики аутентификации.
type SessionRepository interface {
	// Create сохраняет сессию с TTL
	Create(ctx context.Context, token, username string, ttl time.Duration) error

	// GetUsername возвращает имя пользователя сессии;
	// ("", nil) для неизвестного или истёкшего токена
	GetUsername(ctx context.Context, token string) (string, error)

	// Delete завершает сессию
	Delete(ctx context.Context, token string) error
}
