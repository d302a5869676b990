package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	retryBackoff    = 500 * time.Millisecond
)

// BookingNotificationWorker отправляет письма с билетами по событиям
// подтверждённых бронирований
type BookingNotificationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	mailer       repository.MailerRepository
	consumerName string
	maxRetries   int
}

// NewBookingNotificationWorker создает новый BookingNotificationWorker
func NewBookingNotificationWorker(
	streamRepo repository.StreamRepository,
	mailer repository.MailerRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *BookingNotificationWorker {
	// Генерируем уникальное имя consumer'а (используем hostname + PID)
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &BookingNotificationWorker{
		BaseWorker:   worker.NewBaseWorker("booking-notification", consumerGroup, logger),
		streamRepo:   streamRepo,
		mailer:       mailer,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *BookingNotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BookingNotificationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	// Создаем consumer group, если его нет
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBookingConfirmed, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество обработанных сообщений.
func (w *BookingNotificationWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamBookingConfirmed,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	for _, msg := range messages {
		w.processMessage(ctx, msg)

		// ACK в любом случае: письмо - best effort, бронирование уже
		// зафиксировано, перечитывать сообщение бесконечно нет смысла
		if err := w.streamRepo.AckMessage(ctx, domain.StreamBookingConfirmed, w.ConsumerGroup(), msg.ID); err != nil {
			w.Logger().Error("Failed to acknowledge message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	return len(messages), nil
}

// processMessage обрабатывает одно сообщение
func (w *BookingNotificationWorker) processMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.BookingConfirmedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to unmarshal event, skipping",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return
	}

	if event.RecipientEmail == "" {
		logger.Warn("Event has no recipient email, skipping",
			zap.String("pnr", event.PNR))
		return
	}

	mail := repository.MailMessage{
		To:      event.RecipientEmail,
		Subject: fmt.Sprintf("Booking confirmed - %s", event.PNR),
		Body:    renderTicket(&event),
	}

	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if lastErr = w.mailer.Send(ctx, mail); lastErr == nil {
			logger.Info("Ticket email sent",
				zap.String("pnr", event.PNR),
				zap.String("recipient", event.RecipientEmail),
				zap.Int("attempt", attempt))
			return
		}

		logger.Warn("Failed to send ticket email",
			zap.String("pnr", event.PNR),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
		time.Sleep(retryBackoff * time.Duration(attempt))
	}

	logger.Error("Giving up on ticket email",
		zap.String("pnr", event.PNR),
		zap.Int("max_retries", w.maxRetries),
		zap.Error(lastErr))
}

// renderTicket собирает текст письма с билетом
func renderTicket(event *domain.BookingConfirmedEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your booking is confirmed.\n\n")
	fmt.Fprintf(&b, "PNR: %s\n", event.PNR)
	fmt.Fprintf(&b, "Train: %s (%s)\n", event.TrainName, event.TrainNumber)
	fmt.Fprintf(&b, "Route: %s -> %s\n", event.FromStation, event.ToStation)
	fmt.Fprintf(&b, "Date: %s\n", event.TravelDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Departure: %s, arrival: %s\n", event.DepartureTime, event.ArrivalTime)
	fmt.Fprintf(&b, "Passengers: %d\n", event.Passengers)
	if event.PassengerDetails != "" {
		fmt.Fprintf(&b, "Details: %s\n", event.PassengerDetails)
	}
	fmt.Fprintf(&b, "Total: %s\n", event.TotalPrice)

	return b.String()
}
