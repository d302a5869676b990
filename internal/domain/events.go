package domain

import "time"

const (
	// StreamBookingConfirmed - redis stream с событиями успешных бронирований
	StreamBookingConfirmed = "bookings:confirmed"
)

// StreamMessage - сырое сообщение из стрима
type StreamMessage struct {
	ID   string
	Data string
}

// BookingConfirmedEvent публикуется после успешного бронирования.
// Воркер уведомлений отправляет по нему письмо с билетом; сбой отправки
// никогда не откатывает бронирование.
type BookingConfirmedEvent struct {
	EventID          string    `json:"event_id"`
	PNR              string    `json:"pnr"`
	TrainName        string    `json:"train_name"`
	TrainNumber      string    `json:"train_number"`
	FromStation      string    `json:"from_station"`
	ToStation        string    `json:"to_station"`
	TravelDate       time.Time `json:"travel_date"`
	DepartureTime    string    `json:"departure_time"`
	ArrivalTime      string    `json:"arrival_time"`
	Passengers       int       `json:"passengers"`
	PassengerDetails string    `json:"passenger_details"`
	TotalPrice       string    `json:"total_price"`
	RecipientEmail   string    `json:"recipient_email"`
	CreatedAt        time.Time `json:"created_at"`
}
