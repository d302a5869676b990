package domain

import "github.com/shopspring/decimal"

// DashboardStats - сводка для главного экрана админ-панели
type DashboardStats struct {
	TotalUsers    int             `json:"total_users"`
	TotalTrains   int             `json:"total_trains"`
	TodayBookings int             `json:"today_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	WeeklyCounts  []DailyCount    `json:"weekly_counts"`
}

// DailyCount - число бронирований за календарный день
type DailyCount struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}

// RouteStat - популярность связки поезд + конечные точки поездки
type RouteStat struct {
	TrainName   string `json:"train_name" db:"train_name"`
	FromStation string `json:"from_station" db:"from_station"`
	ToStation   string `json:"to_station" db:"to_station"`
	Bookings    int    `json:"bookings" db:"bookings"`
}

// Report - агрегаты для страницы отчётов
type Report struct {
	TotalBookings int             `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TopRoutes     []RouteStat     `json:"top_routes"`
}
