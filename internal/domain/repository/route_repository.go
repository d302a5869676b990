package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// RouteRepository определяет методы работы с маршрутами и их сегментами
type RouteRepository interface {
	// ListByTrain возвращает остановки поезда по возрастанию stop_order
	// с именами и кодами станций
	ListByTrain(ctx context.Context, trainID int64) ([]domain.RouteStop, error)

	// GetStopByID возвращает остановку по ID
	GetStopByID(ctx context.Context, stopID int64) (*domain.RouteStop, error)

	// AddStop создаёт остановку; пара (train, station) и (train, stop_order)
	// уникальны
	AddStop(ctx context.Context, stop *domain.RouteStop) (*domain.RouteStop, error)

	// RemoveStop удаляет остановку
	RemoveStop(ctx context.Context, stopID int64) error

	// ReplaceSegments атомарно заменяет все сегменты поезда: удаление и
	// вставка выполняются в одной транзакции, читатели никогда не видят
	// пустой набор в середине обновления
	ReplaceSegments(ctx context.Context, trainID int64, segments []domain.Segment) error

	// ListSegments возвращает сегменты поезда по возрастанию segment_order
	ListSegments(ctx context.Context, trainID int64) ([]domain.Segment, error)
}
