// Package pnr formats and normalizes booking reference numbers.
package pnr

import (
	"math/rand"
	"regexp"
	"strings"
)

const (
	// Prefix - литеральный префикс всех PNR
	Prefix = "PNR"

	minNumber = 100000
	maxNumber = 999999
)

var pnrPattern = regexp.MustCompile(`^PNR[1-9][0-9]{5}$`)

// Generate возвращает новый PNR вида "PNR123456".
// Уникальность здесь не гарантируется - вызывающая сторона обязана
// проверить сгенерированное значение по хранилищу и повторить при коллизии.
func Generate(rng *rand.Rand) string {
	n := minNumber + rng.Intn(maxNumber-minNumber+1)
	return Prefix + itoa6(n)
}

// Normalize приводит пользовательский ввод к каноническому виду PNR:
// обрезает пробелы и переводит в верхний регистр.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Valid проверяет, что строка имеет канонический формат PNR.
func Valid(s string) bool {
	return pnrPattern.MatchString(s)
}

func itoa6(n int) string {
	buf := [6]byte{}
	for i := 5; i >= 0; i-- {
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[:])
}
