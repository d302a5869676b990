package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BookingStatusConfirmed = "CONFIRMED"
)

// Booking - подтверждённое бронирование. Username хранится значением, а не
// внешним ключом (так делает исходная система учёта пользователей).
type Booking struct {
	ID               int64           `json:"id" db:"id"`
	PNR              string          `json:"pnr" db:"pnr"`
	Username         string          `json:"username" db:"username"`
	TrainID          int64           `json:"train_id" db:"train_id"`
	TrainName        string          `json:"train_name" db:"train_name"`
	TrainNumber      string          `json:"train_number" db:"train_number"`
	FromStationID    int64           `json:"from_station_id" db:"from_station_id"`
	FromStationName  string          `json:"from_station_name" db:"from_station_name"`
	ToStationID      int64           `json:"to_station_id" db:"to_station_id"`
	ToStationName    string          `json:"to_station_name" db:"to_station_name"`
	TravelDate       time.Time       `json:"travel_date" db:"travel_date"`
	Passengers       int             `json:"passengers" db:"passengers"`
	PassengerDetails string          `json:"passenger_details" db:"passenger_details"`
	SeatNumbers      *string         `json:"seat_numbers,omitempty" db:"seat_numbers"`
	TotalPrice       decimal.Decimal `json:"total_price" db:"total_price"`
	Status           string          `json:"status" db:"status"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// TravelDateBefore сообщает, предшествует ли дата поездки дню day
// (сравнение по календарной дате, без учёта времени суток).
func (b *Booking) TravelDateBefore(day time.Time) bool {
	ty, tm, td := b.TravelDate.Date()
	dy, dm, dd := day.Date()
	travel := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	ref := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return travel.Before(ref)
}
