package repository

import (
	"context"

	"github.com/railconnect/internal/domain"
)

// StreamRepository определяет методы работы с событийными стримами
type StreamRepository interface {
	// PublishToStream публикует событие в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup создаёт consumer group для стрима
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count непрочитанных сообщений группы
	// (неблокирующий режим)
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
