package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// StatsRepository определяет агрегатные запросы для админ-панели
type StatsRepository interface {
	// Dashboard возвращает сводку: пользователи, поезда, бронирования за
	// сегодня, выручка и бронирования по дням за последнюю неделю
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)

	// Report возвращает агрегаты отчёта и топ направлений
	Report(ctx context.Context) (*domain.Report, error)
}
