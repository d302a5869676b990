package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// TrainRepository определяет методы работы с каталогом поездов
type TrainRepository interface {
	// Create создаёт поезд; available_seats инициализируется total_seats,
	// номер уникален (DUPLICATE_KEY при конфликте)
	Create(ctx context.Context, train *domain.Train) (*domain.Train, error)

	// GetByID возвращает поезд по ID
	GetByID(ctx context.Context, id int64) (*domain.Train, error)

	// List возвращает поезда в порядке каталога (по id), опционально
	// фильтруя по подстроке имени или номера
	List(ctx context.Context, query string) ([]*domain.Train, error)

	// Update обновляет атрибуты поезда
	Update(ctx context.Context, train *domain.Train) error

	// Delete удаляет поезд вместе с маршрутом и сегментами
	Delete(ctx context.Context, id int64) error

	// HasBookings сообщает, есть ли у поезда бронирования
	HasBookings(ctx context.Context, id int64) (bool, error)
}
