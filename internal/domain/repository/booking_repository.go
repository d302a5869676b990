package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// BookingRepository определяет методы работы с бронированиями.
// Создание и удаление затрагивают два набора записей (booking + счётчик
// мест поезда) и обязаны применяться в одной транзакции.
type BookingRepository interface {
	// Create вставляет бронирование и уменьшает available_seats поезда
	// условным UPDATE ("минус N, только если доступно >= N") в одной
	// транзакции. Возвращает INSUFFICIENT_SEATS, если условие не прошло,
	// и DUPLICATE_KEY при коллизии PNR.
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// Delete удаляет бронирование и возвращает его места поезду
	// (не выше total_seats) в одной транзакции. Общий путь для отмены
	// пассажиром и удаления администратором.
	Delete(ctx context.Context, id int64) error

	// GetByID возвращает бронирование с данными поезда и станций
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// GetByPNR возвращает бронирование по каноническому PNR
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)

	// ExistsPNR проверяет занятость PNR
	ExistsPNR(ctx context.Context, pnr string) (bool, error)

	// ListByUsername возвращает бронирования пользователя, новые первыми
	ListByUsername(ctx context.Context, username string) ([]*domain.Booking, error)

	// List возвращает бронирования для админ-панели, опционально фильтруя
	// по подстроке PNR или имени пользователя
	List(ctx context.Context, query string) ([]*domain.Booking, error)
}
