package dto

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1"`
}

// CreateBookingRequest - запрос на бронирование билета
type CreateBookingRequest struct {
	TrainID          int64  `json:"train_id" validate:"required,min=1"`
	FromStationID    int64  `json:"from_station_id" validate:"required,min=1"`
	ToStationID      int64  `json:"to_station_id" validate:"required,min=1"`
	TravelDate       string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	Passengers       int    `json:"passengers" validate:"required,min=1"`
	PassengerDetails string `json:"passenger_details" validate:"omitempty,max=2000"`
}

// SearchTrainsRequest - параметры поиска поездов
type SearchTrainsRequest struct {
	From string `json:"from" validate:"omitempty,min=1,max=100"`
	To   string `json:"to" validate:"omitempty,min=1,max=100"`
}

// CreateStationRequest - запрос на создание станции
type CreateStationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Code string `json:"code" validate:"required,min=2,max=10"`
}

// UpdateStationRequest - запрос на обновление станции
type UpdateStationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Code string `json:"code" validate:"required,min=2,max=10"`
}

// CreateTrainRequest - запрос на создание поезда.
// FarePerSegment - строка, чтобы цена не проходила через float64.
type CreateTrainRequest struct {
	Number         string `json:"number" validate:"required,min=1,max=20"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	TotalSeats     int    `json:"total_seats" validate:"required,min=1"`
	FarePerSegment string `json:"fare_per_segment" validate:"required"`
}

// UpdateTrainRequest - запрос на обновление поезда
type UpdateTrainRequest struct {
	Number         string `json:"number" validate:"required,min=1,max=20"`
	Name           string `json:"name" validate:"required,min=2,max=100"`
	TotalSeats     int    `json:"total_seats" validate:"required,min=1"`
	FarePerSegment string `json:"fare_per_segment" validate:"required"`
}

// AddStopRequest - запрос на добавление остановки в маршрут
type AddStopRequest struct {
	StationID     int64  `json:"station_id" validate:"required,min=1"`
	ArrivalTime   string `json:"arrival_time" validate:"required,datetime=15:04"`
	DepartureTime string `json:"departure_time" validate:"required,datetime=15:04"`
}

// CreateUserRequest - запрос на создание пользователя
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// UpdateUserRequest - запрос на обновление пользователя
type UpdateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}
