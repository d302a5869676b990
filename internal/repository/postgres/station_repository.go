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

type stationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewStationRepository(db *DB) repository.StationRepository {
	return &stationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *stationRepository) Create(ctx context.Context, station *domain.Station) (*domain.Station, error) {
	query := `
		INSERT INTO stations (name, code)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, station.Name, station.Code).Scan(&station.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrDuplicateKey.WithMessage("Station code %q already exists", station.Code)
		}
		r.logger.Error("Failed to create station", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return station, nil
}

func (r *stationRepository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	query := `SELECT id, name, code FROM stations WHERE id = $1`

	var station domain.Station
	err := r.db.GetContext(ctx, &station, query, id)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("Station %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get station by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &station, nil
}

func (r *stationRepository) FindByName(ctx context.Context, q string) (*domain.Station, error) {
	query := `
		SELECT id, name, code
		FROM stations
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
		LIMIT 1
	`

	var station domain.Station
	err := r.db.GetContext(ctx, &station, query, q)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrStationNotFound.WithMessage("Station %q not found", q)
	}
	if err != nil {
		r.logger.Error("Failed to find station by name", zap.String("query", q), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &station, nil
}

func (r *stationRepository) List(ctx context.Context, q string) ([]*domain.Station, error) {
	query := `
		SELECT id, name, code
		FROM stations
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'
		ORDER BY id
	`

	var stations []*domain.Station
	if err := r.db.SelectContext(ctx, &stations, query, q); err != nil {
		r.logger.Error("Failed to list stations", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return stations, nil
}

func (r *stationRepository) Update(ctx context.Context, station *domain.Station) error {
	query := `UPDATE stations SET name = $1, code = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, station.Name, station.Code, station.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicateKey.WithMessage("Station code %q already exists", station.Code)
		}
		r.logger.Error("Failed to update station", zap.Int64("id", station.ID), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("Station %d not found", station.ID)
	}

	return nil
}

func (r *stationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete station", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("Station %d not found", id)
	}

	return nil
}

func (r *stationRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM route_stops WHERE station_id = $1)
		    OR EXISTS (SELECT 1 FROM bookings WHERE from_station_id = $1 OR to_station_id = $1)
	`

	var referenced bool
	if err := r.db.GetContext(ctx, &referenced, query, id); err != nil {
		r.logger.Error("Failed to check station references", zap.Int64("id", id), zap.Error(err))
		return false, errors.ErrStorageError
	}

	return referenced, nil
}
