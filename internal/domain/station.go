package domain

// Station - железнодорожная станция. Код уникален в справочнике.
type Station struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
