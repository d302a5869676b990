package domain

// User - учётная запись пассажира. Ядро читает только Username и Email
// (адрес получателя подтверждения).
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
}
