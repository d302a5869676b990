package repository

import "context"

// MailMessage - письмо для отправки через почтовый шлюз
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// MailerRepository - клиент исходящей почты. Вызывается строго после
// фиксации бронирования; его сбои - ответственность вызывающего воркера.
type MailerRepository interface {
	// Send отправляет письмо
	Send(ctx context.Context, msg MailMessage) error
}
