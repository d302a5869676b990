package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// StationRepository определяет методы работы со справочником станций
type StationRepository interface {
	// Create создаёт станцию; код уникален (DUPLICATE_KEY при конфликте)
	Create(ctx context.Context, station *domain.Station) (*domain.Station, error)

	// GetByID возвращает станцию по ID
	GetByID(ctx context.Context, id int64) (*domain.Station, error)

	// FindByName возвращает первую станцию, имя которой содержит query
	// (регистронезависимо), в порядке каталога
	FindByName(ctx context.Context, query string) (*domain.Station, error)

	// List возвращает станции, опционально фильтруя по подстроке
	// имени или кода
	List(ctx context.Context, query string) ([]*domain.Station, error)

	// Update обновляет имя и код станции
	Update(ctx context.Context, station *domain.Station) error

	// Delete удаляет станцию
	Delete(ctx context.Context, id int64) error

	// IsReferenced сообщает, ссылаются ли на станцию остановки маршрутов
	// или бронирования
	IsReferenced(ctx context.Context, id int64) (bool, error)
}
