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

type trainRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTrainRepository(db *DB) repository.TrainRepository {
	return &trainRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *trainRepository) Create(ctx context.Context, train *domain.Train) (*domain.Train, error) {
	// available_seats = total_seats ровно один раз, при создании
	query := `
		INSERT INTO trains (number, name, total_seats, available_seats, fare_per_segment)
		VALUES ($1, $2, $3, $3, $4)
		RETURNING id, available_seats
	`

	err := r.db.QueryRowContext(ctx, query,
		train.Number, train.Name, train.TotalSeats, train.FarePerSegment,
	).Scan(&train.ID, &train.AvailableSeats)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrDuplicateKey.WithMessage("Train number %q already exists", train.Number)
		}
		r.logger.Error("Failed to create train", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return train, nil
}

func (r *trainRepository) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	query := `
		SELECT id, number, name, total_seats, available_seats, fare_per_segment
		FROM trains
		WHERE id = $1
	`

	var train domain.Train
	err := r.db.GetContext(ctx, &train, query, id)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("Train %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get train by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &train, nil
}

func (r *trainRepository) List(ctx context.Context, q string) ([]*domain.Train, error) {
	// Порядок каталога (по id) - детерминированность выдачи поиска
	query := `
		SELECT id, number, name, total_seats, available_seats, fare_per_segment
		FROM trains
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR number ILIKE '%' || $1 || '%'
		ORDER BY id
	`

	var trains []*domain.Train
	if err := r.db.SelectContext(ctx, &trains, query, q); err != nil {
		r.logger.Error("Failed to list trains", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return trains, nil
}

func (r *trainRepository) Update(ctx context.Context, train *domain.Train) error {
	query := `
		UPDATE trains
		SET number = $1, name = $2, total_seats = $3, available_seats = $4, fare_per_segment = $5
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, query,
		train.Number, train.Name, train.TotalSeats, train.AvailableSeats,
		train.FarePerSegment, train.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicateKey.WithMessage("Train number %q already exists", train.Number)
		}
		r.logger.Error("Failed to update train", zap.Int64("id", train.ID), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("Train %d not found", train.ID)
	}

	return nil
}

func (r *trainRepository) Delete(ctx context.Context, id int64) error {
	// route_stops и segments удаляются каскадом (поезд владеет ими)
	res, err := r.db.ExecContext(ctx, `DELETE FROM trains WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete train", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.ErrNotFound.WithMessage("Train %d not found", id)
	}

	return nil
}

func (r *trainRepository) HasBookings(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE train_id = $1)`, id)
	if err != nil {
		r.logger.Error("Failed to check train bookings", zap.Int64("id", id), zap.Error(err))
		return false, errors.ErrStorageError
	}

	return exists, nil
}
