package postgres

import (
	"context"
	"database/sql"
	goerrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"go.uber.org/zap"
)

type routeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewRouteRepository(db *DB) repository.RouteRepository {
	return &routeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *routeRepository) ListByTrain(ctx context.Context, trainID int64) ([]domain.RouteStop, error) {
	query := `
		SELECT rs.id, rs.train_id, rs.station_id,
		       s.name AS station_name, s.code AS station_code,
		       rs.arrival_time, rs.departure_time, rs.stop_order
		FROM route_stops rs
		JOIN stations s ON s.id = rs.station_id
		WHERE rs.train_id = $1
		ORDER BY rs.stop_order
	`

	var stops []domain.RouteStop
	if err := r.db.SelectContext(ctx, &stops, query, trainID); err != nil {
		r.logger.Error("Failed to list route stops", zap.Int64("train_id", trainID), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return stops, nil
}

func (r *routeRepository) GetStopByID(ctx context.Context, stopID int64) (*domain.RouteStop, error) {
	query := `
		SELECT rs.id, rs.train_id, rs.station_id,
		       s.name AS station_name, s.code AS station_code,
		       rs.arrival_time, rs.departure_time, rs.stop_order
		FROM route_stops rs
		JOIN stations s ON s.id = rs.station_id
		WHERE rs.id = $1
	`

	var stop domain.RouteStop
	err := r.db.GetContext(ctx, &stop, query, stopID)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("Route stop %d not found", stopID)
	}
	if err != nil {
		r.logger.Error("Failed to get route stop", zap.Int64("id", stopID), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &stop, nil
}

func (r *routeRepository) AddStop(ctx context.Context, stop *domain.RouteStop) (*domain.RouteStop, error) {
	query := `
		INSERT INTO route_stops (train_id, station_id, arrival_time, departure_time, stop_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		stop.TrainID, stop.StationID, stop.ArrivalTime, stop.DepartureTime, stop.StopOrder,
	).Scan(&stop.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrInvalidSelection.WithMessage("Station is already on this train's route")
		}
		r.logger.Error("Failed to add route stop", zap.Int64("train_id", stop.TrainID), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return stop, nil
}

func (r *routeRepository) RemoveStop(ctx context.Context, stopID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM route_stops WHERE id = $1`, stopID)
	if err != nil {
		r.logger.Error("Failed to remove route stop", zap.Int64("id", stopID), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("Route stop %d not found", stopID)
	}

	return nil
}

// ReplaceSegments удаляет и заново создаёт все сегменты поезда в одной
// транзакции: устаревшие сегменты не переживают правку маршрута, а
// читатели не видят пустой набор в середине обновления.
func (r *routeRepository) ReplaceSegments(ctx context.Context, trainID int64, segments []domain.Segment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin segments transaction", zap.Error(err))
		return errors.ErrStorageError
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM segments WHERE train_id = $1`, trainID); err != nil {
		r.logger.Error("Failed to delete segments", zap.Int64("train_id", trainID), zap.Error(err))
		return errors.ErrStorageError
	}

	for _, seg := range segments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO segments (train_id, start_station_id, end_station_id, segment_order)
			VALUES ($1, $2, $3, $4)
		`, trainID, seg.StartStationID, seg.EndStationID, seg.SegmentOrder)
		if err != nil {
			r.logger.Error("Failed to insert segment",
				zap.Int64("train_id", trainID),
				zap.Int("segment_order", seg.SegmentOrder),
				zap.Error(err))
			return errors.ErrStorageError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit segments transaction", zap.Error(err))
		return errors.ErrStorageError
	}

	return nil
}

func (r *routeRepository) ListSegments(ctx context.Context, trainID int64) ([]domain.Segment, error) {
	query := `
		SELECT id, train_id, start_station_id, end_station_id, segment_order
		FROM segments
		WHERE train_id = $1
		ORDER BY segment_order
	`

	var segments []domain.Segment
	if err := r.db.SelectContext(ctx, &segments, query, trainID); err != nil {
		r.logger.Error("Failed to list segments", zap.Int64("train_id", trainID), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return segments, nil
}
