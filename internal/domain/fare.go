package domain

import "github.com/shopspring/decimal"

// SegmentCount возвращает число сегментов между двумя остановками маршрута.
// Предусловие: fromOrder < toOrder (проверяется вызывающей стороной,
// обратное направление никогда не валидно).
func SegmentCount(fromOrder, toOrder int) int {
	return toOrder - fromOrder
}

// Fare вычисляет стоимость поездки точной десятичной арифметикой:
// segments * farePerSegment * passengers. Деньги никогда не считаются
// во float64.
func Fare(farePerSegment decimal.Decimal, segments, passengers int) decimal.Decimal {
	return farePerSegment.
		Mul(decimal.NewFromInt(int64(segments))).
		Mul(decimal.NewFromInt(int64(passengers)))
}
