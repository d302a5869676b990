package dto

// LoginResponse - результат входа
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SearchResult - один поезд в выдаче поиска. Для поезда без маршрута
// в листинге станции заменяются заглушкой.
type SearchResult struct {
	TrainID        int64  `json:"train_id"`
	TrainNumber    string `json:"train_number"`
	TrainName      string `json:"train_name"`
	FromStation    string `json:"from_station"`
	ToStation      string `json:"to_station"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	AvailableSeats int    `json:"available_seats"`
	Price          string `json:"price"`
}

// SearchResponse - выдача поиска поездов
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}
