package domain

import "github.com/shopspring/decimal"

// Train - поезд каталога. AvailableSeats инициализируется значением
// TotalSeats ровно один раз при создании и далее меняется только
// бронированиями и отменами. Инвариант: 0 <= AvailableSeats <= TotalSeats.
type Train struct {
	ID             int64           `json:"id" db:"id"`
	Number         string          `json:"number" db:"number"`
	Name           string          `json:"name" db:"name"`
	TotalSeats     int             `json:"total_seats" db:"total_seats"`
	AvailableSeats int             `json:"available_seats" db:"available_seats"`
	FarePerSegment decimal.Decimal `json:"fare_per_segment" db:"fare_per_segment"`
}
