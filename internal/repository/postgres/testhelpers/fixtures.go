package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedStation inserts a station and returns its ID
func SeedStation(db *sql.DB, name, code string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		"INSERT INTO stations (name, code) VALUES ($1, $2) RETURNING id", name, code).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed station %s: %w", code, err)
	}
	return id, nil
}

// SeedTrain inserts a train with a full complement of seats and returns its ID
func SeedTrain(db *sql.DB, number, name string, totalSeats int, farePerSegment string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO trains (number, name, total_seats, available_seats, fare_per_segment)
		VALUES ($1, $2, $3, $3, $4) RETURNING id
	`, number, name, totalSeats, farePerSegment).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed train %s: %w", number, err)
	}
	return id, nil
}

// SeedRouteStop inserts a route stop and returns its ID
func SeedRouteStop(db *sql.DB, trainID, stationID int64, arrival, departure string, order int) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(), `
		INSERT INTO route_stops (train_id, station_id, arrival_time, departure_time, stop_order)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`, trainID, stationID, arrival, departure, order).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("seed route stop order %d: %w", order, err)
	}
	return id, nil
}

// GetAvailableSeats returns the current seat counter for a train
func GetAvailableSeats(db *sql.DB, trainID int64) (int, error) {
	var seats int
	err := db.QueryRowContext(context.Background(),
		"SELECT available_seats FROM trains WHERE id = $1", trainID).Scan(&seats)
	if err != nil {
		return 0, fmt.Errorf("get available seats for train %d: %w", trainID, err)
	}
	return seats, nil
}
