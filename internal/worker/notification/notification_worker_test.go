package notification_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/worker/notification"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockMailerRepository is a mock of MailerRepository
type MockMailerRepository struct {
	mock.Mock
}

func (m *MockMailerRepository) Send(ctx context.Context, msg repository.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func newWorker(stream *MockStreamRepository, mailer *MockMailerRepository) *notification.BookingNotificationWorker {
	return notification.NewBookingNotificationWorker(stream, mailer, "test-group", 3, zap.NewNop())
}

func confirmedMessage(t *testing.T, id string, event domain.BookingConfirmedEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	assert.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

func TestBookingNotificationWorker_Name(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockMailerRepository{})
	assert.Equal(t, "booking-notification", w.Name())
}

func TestBookingNotificationWorker_StopIsIdempotent(t *testing.T) {
	w := newWorker(&MockStreamRepository{}, &MockMailerRepository{})

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestBookingNotificationWorker_SendsTicketAndAcks(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockMailer := &MockMailerRepository{}
	w := newWorker(mockStream, mockMailer)

	event := domain.BookingConfirmedEvent{
		EventID:        "evt-1",
		PNR:            "PNR123456",
		TrainName:      "Coastal Express",
		TrainNumber:    "CE-101",
		FromStation:    "Alpha",
		ToStation:      "Gamma",
		TravelDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		DepartureTime:  "08:00",
		ArrivalTime:    "12:10",
		Passengers:     2,
		TotalPrice:     "200.00",
		RecipientEmail: "alice@example.com",
	}
	msg := confirmedMessage(t, "1-0", event)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingConfirmed, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "1-0").
		Return(nil)

	mockMailer.On("Send", mock.Anything, mock.MatchedBy(func(m repository.MailMessage) bool {
		return m.To == "alice@example.com" &&
			m.Subject == "Booking confirmed - PNR123456" &&
			strings.Contains(m.Body, "PNR: PNR123456") &&
			strings.Contains(m.Body, "Coastal Express") &&
			strings.Contains(m.Body, "Alpha -> Gamma") &&
			strings.Contains(m.Body, "Total: 200.00")
	})).Return(nil).Once()

	runBriefly(t, w)

	mockMailer.AssertExpectations(t)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "1-0")
}

func TestBookingNotificationWorker_AcksMalformedMessage(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockMailer := &MockMailerRepository{}
	w := newWorker(mockStream, mockMailer)

	msg := domain.StreamMessage{ID: "2-0", Data: "{not json"}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingConfirmed, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "2-0").
		Return(nil)

	runBriefly(t, w)

	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "2-0")
}

func TestBookingNotificationWorker_AcksAfterMailerExhaustsRetries(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockMailer := &MockMailerRepository{}
	w := newWorker(mockStream, mockMailer)

	event := domain.BookingConfirmedEvent{
		PNR:            "PNR654321",
		RecipientEmail: "bob@example.com",
		TravelDate:     time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
	msg := confirmedMessage(t, "3-0", event)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingConfirmed, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{msg}, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "3-0").
		Return(nil)

	mockMailer.On("Send", mock.Anything, mock.Anything).
		Return(assert.AnError)

	runBriefly(t, w, 5*time.Second)

	mockMailer.AssertNumberOfCalls(t, "Send", 3)
	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamBookingConfirmed, "test-group", "3-0")
}

func TestBookingNotificationWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockMailer := &MockMailerRepository{}
	w := newWorker(mockStream, mockMailer)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBookingConfirmed, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBookingConfirmed, "test-group", mock.AnythingOfType("string"), 20).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

// runBriefly запускает воркер, даёт ему обработать очередь и останавливает
func runBriefly(t *testing.T, w *notification.BookingNotificationWorker, wait ...time.Duration) {
	t.Helper()

	grace := 500 * time.Millisecond
	if len(wait) > 0 {
		grace = wait[0]
	}

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	time.Sleep(grace)
	assert.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
