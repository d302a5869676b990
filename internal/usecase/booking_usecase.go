package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/pkg/pnr"
	"github.com/railconnect/internal/usecase/dto"
)

// BookingUseCase - use case бронирования билетов
type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	trainRepo   repository.TrainRepository
	routeRepo   repository.RouteRepository
	userRepo    repository.UserRepository
	streamRepo  repository.StreamRepository
	logger      *zap.Logger

	pnrMaxAttempts int

	mu  sync.Mutex
	rng *rand.Rand

	// now подменяется в тестах
	now func() time.Time
}

// NewBookingUseCase - создание нового BookingUseCase
func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	trainRepo repository.TrainRepository,
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	pnrMaxAttempts int,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo:    bookingRepo,
		trainRepo:      trainRepo,
		routeRepo:      routeRepo,
		userRepo:       userRepo,
		streamRepo:     streamRepo,
		logger:         logger,
		pnrMaxAttempts: pnrMaxAttempts,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		now:            time.Now,
	}
}

// Create бронирует билет. Порядок проверок фиксирован: станции на маршруте,
// направление, дата, места. Финальная проверка мест - условный UPDATE в
// транзакции репозитория, поэтому предварительное сравнение с available_seats
// не делается: его результат всё равно мог бы устареть к моменту записи.
func (uc *BookingUseCase) Create(ctx context.Context, principal *domain.Principal, req dto.CreateBookingRequest) (*domain.Booking, error) {
	if principal.Anonymous() {
		return nil, errors.ErrUnauthorized
	}

	train, err := uc.trainRepo.GetByID(ctx, req.TrainID)
	if err != nil {
		return nil, err
	}

	stops, err := uc.routeRepo.ListByTrain(ctx, req.TrainID)
	if err != nil {
		return nil, err
	}

	fromStop := domain.FindStopByStation(stops, req.FromStationID)
	toStop := domain.FindStopByStation(stops, req.ToStationID)
	if fromStop == nil || toStop == nil {
		return nil, errors.ErrInvalidSelection.WithMessage("Both stations must be on the train's route")
	}
	if fromStop.StopOrder >= toStop.StopOrder {
		return nil, errors.ErrInvalidSelection.WithMessage("Destination must come after origin on the route")
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithMessage("Invalid travel date %q", req.TravelDate)
	}

	today := uc.now()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if travelDate.Before(todayDate) {
		return nil, errors.ErrPastDate
	}

	segments := domain.SegmentCount(fromStop.StopOrder, toStop.StopOrder)
	price := domain.Fare(train.FarePerSegment, segments, req.Passengers)

	code, err := uc.allocatePNR(ctx)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PNR:              code,
		Username:         principal.Username,
		TrainID:          train.ID,
		FromStationID:    req.FromStationID,
		ToStationID:      req.ToStationID,
		TravelDate:       travelDate,
		Passengers:       req.Passengers,
		PassengerDetails: req.PassengerDetails,
		TotalPrice:       price,
		Status:           domain.BookingStatusConfirmed,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Booking created",
		zap.String("pnr", created.PNR),
		zap.String("username", created.Username),
		zap.Int64("train_id", created.TrainID),
		zap.Int("passengers", created.Passengers))

	// Уведомление не влияет на исход бронирования
	uc.publishConfirmed(ctx, created, train, fromStop, toStop)

	return uc.bookingRepo.GetByID(ctx, created.ID)
}

// Cancel отменяет бронирование владельца. Поездки с прошедшей датой не
// отменяются; места возвращаются поезду в транзакции репозитория.
func (uc *BookingUseCase) Cancel(ctx context.Context, principal *domain.Principal, id int64) error {
	if principal.Anonymous() {
		return errors.ErrUnauthorized
	}

	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Чужое бронирование неотличимо от несуществующего
	if booking.Username != principal.Username {
		return errors.ErrNotFound.WithMessage("Booking %d not found", id)
	}

	if booking.TravelDateBefore(uc.now()) {
		return errors.ErrPastDate.WithMessage("Cannot cancel a booking after its travel date")
	}

	if err := uc.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Booking cancelled",
		zap.String("pnr", booking.PNR),
		zap.String("username", booking.Username))

	return nil
}

// GetByID возвращает бронирование владельца.
func (uc *BookingUseCase) GetByID(ctx context.Context, principal *domain.Principal, id int64) (*domain.Booking, error) {
	if principal.Anonymous() {
		return nil, errors.ErrUnauthorized
	}

	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Username != principal.Username {
		return nil, errors.ErrNotFound.WithMessage("Booking %d not found", id)
	}

	return booking, nil
}

// ListForUser возвращает бронирования пользователя, новые первыми.
func (uc *BookingUseCase) ListForUser(ctx context.Context, principal *domain.Principal) ([]*domain.Booking, error) {
	if principal.Anonymous() {
		return nil, errors.ErrUnauthorized
	}

	return uc.bookingRepo.ListByUsername(ctx, principal.Username)
}

// LookupPNR ищет бронирование по PNR. Ввод нормализуется (пробелы, регистр);
// всё, что не похоже на PNR, сразу NOT_FOUND.
func (uc *BookingUseCase) LookupPNR(ctx context.Context, raw string) (*domain.Booking, error) {
	code := pnr.Normalize(raw)
	if !pnr.Valid(code) {
		return nil, errors.ErrNotFound.WithMessage("PNR %s not found", code)
	}

	return uc.bookingRepo.GetByPNR(ctx, code)
}

// allocatePNR генерирует уникальный PNR с повторами. Уникальный индекс в
// хранилище страхует от гонки между проверкой и вставкой.
func (uc *BookingUseCase) allocatePNR(ctx context.Context) (string, error) {
	for attempt := 0; attempt < uc.pnrMaxAttempts; attempt++ {
		uc.mu.Lock()
		code := pnr.Generate(uc.rng)
		uc.mu.Unlock()

		exists, err := uc.bookingRepo.ExistsPNR(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}

		uc.logger.Warn("PNR collision, retrying",
			zap.String("pnr", code),
			zap.Int("attempt", attempt+1))
	}

	return "", errors.ErrPNRGenerationExhausted
}

func (uc *BookingUseCase) publishConfirmed(ctx context.Context, booking *domain.Booking, train *domain.Train, fromStop, toStop *domain.RouteStop) {
	recipient := ""
	user, err := uc.userRepo.GetByUsername(ctx, booking.Username)
	if err != nil {
		uc.logger.Warn("Failed to resolve notification recipient",
			zap.String("username", booking.Username),
			zap.Error(err))
	} else {
		recipient = user.Email
	}

	event := domain.BookingConfirmedEvent{
		EventID:          uuid.NewString(),
		PNR:              booking.PNR,
		TrainName:        train.Name,
		TrainNumber:      train.Number,
		FromStation:      fromStop.StationName,
		ToStation:        toStop.StationName,
		TravelDate:       booking.TravelDate,
		DepartureTime:    fromStop.DepartureTime,
		ArrivalTime:      toStop.ArrivalTime,
		Passengers:       booking.Passengers,
		PassengerDetails: booking.PassengerDetails,
		TotalPrice:       booking.TotalPrice.StringFixed(2),
		RecipientEmail:   recipient,
		CreatedAt:        uc.now(),
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamBookingConfirmed, event); err != nil {
		uc.logger.Warn("Failed to publish booking confirmed event",
			zap.String("pnr", booking.PNR),
			zap.Error(err))
	}
}
