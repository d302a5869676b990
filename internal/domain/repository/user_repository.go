package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// UserRepository определяет методы работы с учётными записями
type UserRepository interface {
	// Create создаёт пользователя; username уникален
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername возвращает пользователя по имени
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List возвращает пользователей, опционально фильтруя по подстроке
	// имени или email
	List(ctx context.Context, query string) ([]*domain.User, error)

	// Update обновляет email и пароль
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя
	Delete(ctx context.Context, id int64) error
}
