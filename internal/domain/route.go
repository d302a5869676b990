package domain

import "sort"

// RouteStop - остановка поезда. StopOrder уникален в пределах поезда и
// задаёт полный порядок остановок; пропуски в нумерации допустимы.
type RouteStop struct {
	ID            int64  `json:"id" db:"id"`
	TrainID       int64  `json:"train_id" db:"train_id"`
	StationID     int64  `json:"station_id" db:"station_id"`
	StationName   string `json:"station_name" db:"station_name"`
	StationCode   string `json:"station_code" db:"station_code"`
	ArrivalTime   string `json:"arrival_time" db:"arrival_time"`
	DepartureTime string `json:"departure_time" db:"departure_time"`
	StopOrder     int    `json:"stop_order" db:"stop_order"`
}

// Segment - производная пара смежных станций маршрута. Сегменты никогда не
// редактируются напрямую: при любом изменении маршрута весь набор сегментов
// поезда пересоздаётся из актуального порядка остановок.
type Segment struct {
	ID             int64 `json:"id" db:"id"`
	TrainID        int64 `json:"train_id" db:"train_id"`
	StartStationID int64 `json:"start_station_id" db:"start_station_id"`
	EndStationID   int64 `json:"end_station_id" db:"end_station_id"`
	SegmentOrder   int   `json:"segment_order" db:"segment_order"`
}

// BuildSegments - чистая функция segments(routeStops) -> segments.
// Сортирует остановки по StopOrder и возвращает по одному сегменту на
// каждую смежную пару, SegmentOrder начинается с 1. Для маршрута из
// нуля или одной остановки сегментов нет.
func BuildSegments(stops []RouteStop) []Segment {
	if len(stops) < 2 {
		return nil
	}

	ordered := make([]RouteStop, len(stops))
	copy(ordered, stops)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StopOrder < ordered[j].StopOrder
	})

	segments := make([]Segment, 0, len(ordered)-1)
	for i := 0; i < len(ordered)-1; i++ {
		segments = append(segments, Segment{
			TrainID:        ordered[i].TrainID,
			StartStationID: ordered[i].StationID,
			EndStationID:   ordered[i+1].StationID,
			SegmentOrder:   i + 1,
		})
	}

	return segments
}

// NextStopOrder возвращает порядковый номер для новой остановки:
// max(StopOrder)+1, либо 1 для пустого маршрута.
func NextStopOrder(stops []RouteStop) int {
	max := 0
	for _, s := range stops {
		if s.StopOrder > max {
			max = s.StopOrder
		}
	}
	return max + 1
}

// FindStopByStation ищет остановку маршрута по станции.
func FindStopByStation(stops []RouteStop, stationID int64) *RouteStop {
	for i := range stops {
		if stops[i].StationID == stationID {
			return &stops[i]
		}
	}
	return nil
}
