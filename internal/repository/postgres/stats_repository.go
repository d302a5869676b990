package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"go.uber.org/zap"
)

type statsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStatsRepository(db *DB) repository.StatsRepository {
	return &statsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM trains) AS total_trains,
			(SELECT COUNT(*) FROM bookings WHERE created_at::date = CURRENT_DATE) AS today_bookings,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings) AS total_revenue
	`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalTrains, &stats.TodayBookings, &stats.TotalRevenue,
	)
	if err != nil {
		r.logger.Error("Failed to load dashboard counters", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	// generate_series даёт нулевые дни: график за неделю всегда из 7 точек
	weeklyQuery := `
		SELECT to_char(d.day, 'YYYY-MM-DD') AS date, COUNT(b.id) AS count
		FROM generate_series(CURRENT_DATE - INTERVAL '6 days', CURRENT_DATE, '1 day') AS d(day)
		LEFT JOIN bookings b ON b.created_at::date = d.day::date
		GROUP BY d.day
		ORDER BY d.day
	`

	if err := r.db.SelectContext(ctx, &stats.WeeklyCounts, weeklyQuery); err != nil {
		r.logger.Error("Failed to load weekly booking counts", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &stats, nil
}

func (r *statsRepository) Report(ctx context.Context) (*domain.Report, error) {
	var report domain.Report

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM bookings
	`

	err := r.db.QueryRowContext(ctx, query).Scan(&report.TotalBookings, &report.TotalRevenue)
	if err != nil {
		r.logger.Error("Failed to load report totals", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	topQuery := `
		SELECT t.name AS train_name, fs.name AS from_station, ts.name AS to_station,
		       COUNT(*) AS bookings
		FROM bookings b
		JOIN trains t ON t.id = b.train_id
		JOIN stations fs ON fs.id = b.from_station_id
		JOIN stations ts ON ts.id = b.to_station_id
		GROUP BY t.name, fs.name, ts.name
		ORDER BY bookings DESC, train_name
		LIMIT 10
	`

	if err := r.db.SelectContext(ctx, &report.TopRoutes, topQuery); err != nil {
		r.logger.Error("Failed to load top routes", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &report, nil
}
