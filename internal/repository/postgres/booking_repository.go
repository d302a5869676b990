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

type bookingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewBookingRepository(db *DB) repository.BookingRepository {
	return &bookingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const bookingSelect = `
	SELECT b.id, b.pnr, b.username, b.train_id,
	       t.name AS train_name, t.number AS train_number,
	       b.from_station_id, fs.name AS from_station_name,
	       b.to_station_id, ts.name AS to_station_name,
	       b.travel_date, b.passengers, b.passenger_details, b.seat_numbers,
	       b.total_price, b.status, b.created_at
	FROM bookings b
	JOIN trains t ON t.id = b.train_id
	JOIN stations fs ON fs.id = b.from_station_id
	JOIN stations ts ON ts.id = b.to_station_id
`

// Create вставляет бронирование и списывает места одной транзакцией.
// Проверка и списание мест - один условный UPDATE: два конкурентных
// бронирования не могут оба пройти по одним и тем же местам.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, errors.ErrStorageError
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE trains
		SET available_seats = available_seats - $1
		WHERE id = $2 AND available_seats >= $1
	`, booking.Passengers, booking.TrainID)
	if err != nil {
		r.logger.Error("Failed to decrement seats", zap.Int64("train_id", booking.TrainID), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, errors.ErrInsufficientSeats
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (pnr, username, train_id, from_station_id, to_station_id,
		                      travel_date, passengers, passenger_details, seat_numbers,
		                      total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`,
		booking.PNR, booking.Username, booking.TrainID,
		booking.FromStationID, booking.ToStationID,
		booking.TravelDate, booking.Passengers, booking.PassengerDetails,
		booking.SeatNumbers, booking.TotalPrice, booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.ErrDuplicateKey.WithMessage("PNR %s already allocated", booking.PNR)
		}
		r.logger.Error("Failed to insert booking", zap.String("pnr", booking.PNR), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit booking transaction", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return booking, nil
}

// Delete возвращает места поезду и удаляет запись одной транзакцией.
// Восстановление ограничено total_seats: отмена не может поднять
// счётчик выше вместимости поезда.
func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin cancellation transaction", zap.Error(err))
		return errors.ErrStorageError
	}
	defer tx.Rollback()

	var trainID int64
	var passengers int
	err = tx.QueryRowContext(ctx, `
		SELECT train_id, passengers FROM bookings WHERE id = $1 FOR UPDATE
	`, id).Scan(&trainID, &passengers)
	if goerrors.Is(err, sql.ErrNoRows) {
		return errors.ErrNotFound.WithMessage("Booking %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to lock booking", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE trains
		SET available_seats = LEAST(available_seats + $1, total_seats)
		WHERE id = $2
	`, passengers, trainID)
	if err != nil {
		r.logger.Error("Failed to restore seats", zap.Int64("train_id", trainID), zap.Error(err))
		return errors.ErrStorageError
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		r.logger.Error("Failed to delete booking", zap.Int64("id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit cancellation transaction", zap.Error(err))
		return errors.ErrStorageError
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, bookingSelect+` WHERE b.id = $1`, id)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("Booking %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get booking by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &booking, nil
}

func (r *bookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.GetContext(ctx, &booking, bookingSelect+` WHERE b.pnr = $1`, pnr)
	if goerrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound.WithMessage("PNR %s not found", pnr)
	}
	if err != nil {
		r.logger.Error("Failed to get booking by PNR", zap.String("pnr", pnr), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return &booking, nil
}

func (r *bookingRepository) ExistsPNR(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM bookings WHERE pnr = $1)`, pnr)
	if err != nil {
		r.logger.Error("Failed to check PNR existence", zap.String("pnr", pnr), zap.Error(err))
		return false, errors.ErrStorageError
	}

	return exists, nil
}

func (r *bookingRepository) ListByUsername(ctx context.Context, username string) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := r.db.SelectContext(ctx, &bookings,
		bookingSelect+` WHERE b.username = $1 ORDER BY b.id DESC`, username)
	if err != nil {
		r.logger.Error("Failed to list bookings by username", zap.String("username", username), zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return bookings, nil
}

func (r *bookingRepository) List(ctx context.Context, q string) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := r.db.SelectContext(ctx, &bookings, bookingSelect+`
		WHERE $1 = '' OR b.pnr ILIKE '%' || $1 || '%' OR b.username ILIKE '%' || $1 || '%'
		ORDER BY b.id DESC
	`, q)
	if err != nil {
		r.logger.Error("Failed to list bookings", zap.Error(err))
		return nil, errors.ErrStorageError
	}

	return bookings, nil
}
