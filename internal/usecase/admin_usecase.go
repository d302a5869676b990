package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/usecase/dto"
)

// AdminUseCase - use case админ-панели: справочники, пользователи,
// бронирования и отчёты
type AdminUseCase struct {
	stationRepo repository.StationRepository
	trainRepo   repository.TrainRepository
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	statsRepo   repository.StatsRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
}

// NewAdminUseCase - создание нового AdminUseCase
func NewAdminUseCase(
	stationRepo repository.StationRepository,
	trainRepo repository.TrainRepository,
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		stationRepo: stationRepo,
		trainRepo:   trainRepo,
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		statsRepo:   statsRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

// --- Stations ---

// CreateStation создаёт станцию; код приводится к верхнему регистру.
func (uc *AdminUseCase) CreateStation(ctx context.Context, req dto.CreateStationRequest) (*domain.Station, error) {
	station := &domain.Station{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	created, err := uc.stationRepo.Create(ctx, station)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Station created", zap.String("code", created.Code))
	return created, nil
}

func (uc *AdminUseCase) GetStation(ctx context.Context, id int64) (*domain.Station, error) {
	return uc.stationRepo.GetByID(ctx, id)
}

func (uc *AdminUseCase) ListStations(ctx context.Context, query string) ([]*domain.Station, error) {
	return uc.stationRepo.List(ctx, query)
}

func (uc *AdminUseCase) UpdateStation(ctx context.Context, id int64, req dto.UpdateStationRequest) (*domain.Station, error) {
	station := &domain.Station{
		ID:   id,
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	if err := uc.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}

	uc.invalidateListing(ctx)
	return station, nil
}

// DeleteStation удаляет станцию. Станция, на которую ссылаются маршруты или
// бронирования, не удаляется: история поездок должна оставаться читаемой.
func (uc *AdminUseCase) DeleteStation(ctx context.Context, id int64) error {
	referenced, err := uc.stationRepo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return errors.ErrInUse.WithMessage("Station is referenced by routes or bookings")
	}

	if err := uc.stationRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Station deleted", zap.Int64("id", id))
	return nil
}

// --- Trains ---

// CreateTrain создаёт поезд. available_seats = total_seats только здесь.
func (uc *AdminUseCase) CreateTrain(ctx context.Context, req dto.CreateTrainRequest) (*domain.Train, error) {
	fare, err := decimal.NewFromString(req.FarePerSegment)
	if err != nil || fare.IsNegative() {
		return nil, errors.ErrInvalidRequest.WithMessage("Invalid fare per segment %q", req.FarePerSegment)
	}

	train := &domain.Train{
		Number:         strings.TrimSpace(req.Number),
		Name:           strings.TrimSpace(req.Name),
		TotalSeats:     req.TotalSeats,
		FarePerSegment: fare,
	}

	created, err := uc.trainRepo.Create(ctx, train)
	if err != nil {
		return nil, err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("Train created",
		zap.String("number", created.Number),
		zap.Int("total_seats", created.TotalSeats))

	return created, nil
}

func (uc *AdminUseCase) GetTrain(ctx context.Context, id int64) (*domain.Train, error) {
	return uc.trainRepo.GetByID(ctx, id)
}

func (uc *AdminUseCase) ListTrains(ctx context.Context, query string) ([]*domain.Train, error) {
	return uc.trainRepo.List(ctx, query)
}

// UpdateTrain обновляет атрибуты поезда. Изменение вместимости сдвигает
// available_seats на ту же величину, оставаясь в пределах [0, total_seats];
// сам счётчик занятых мест правка каталога не трогает.
func (uc *AdminUseCase) UpdateTrain(ctx context.Context, id int64, req dto.UpdateTrainRequest) (*domain.Train, error) {
	fare, err := decimal.NewFromString(req.FarePerSegment)
	if err != nil || fare.IsNegative() {
		return nil, errors.ErrInvalidRequest.WithMessage("Invalid fare per segment %q", req.FarePerSegment)
	}

	train, err := uc.trainRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	available := train.AvailableSeats + (req.TotalSeats - train.TotalSeats)
	if available < 0 {
		available = 0
	}
	if available > req.TotalSeats {
		available = req.TotalSeats
	}

	train.Number = strings.TrimSpace(req.Number)
	train.Name = strings.TrimSpace(req.Name)
	train.TotalSeats = req.TotalSeats
	train.AvailableSeats = available
	train.FarePerSegment = fare

	if err := uc.trainRepo.Update(ctx, train); err != nil {
		return nil, err
	}

	uc.invalidateListing(ctx)
	return train, nil
}

// DeleteTrain удаляет поезд вместе с маршрутом и сегментами. Поезд с
// бронированиями не удаляется.
func (uc *AdminUseCase) DeleteTrain(ctx context.Context, id int64) error {
	hasBookings, err := uc.trainRepo.HasBookings(ctx, id)
	if err != nil {
		return err
	}
	if hasBookings {
		return errors.ErrInUse.WithMessage("Train has bookings")
	}

	if err := uc.trainRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("Train deleted", zap.Int64("id", id))
	return nil
}

// --- Users ---

func (uc *AdminUseCase) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	return uc.userRepo.Create(ctx, user)
}

func (uc *AdminUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, query string) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, query)
}

func (uc *AdminUseCase) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Email = strings.TrimSpace(req.Email)
	user.Password = req.Password

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, id int64) error {
	return uc.userRepo.Delete(ctx, id)
}

// --- Bookings ---

func (uc *AdminUseCase) ListBookings(ctx context.Context, query string) ([]*domain.Booking, error) {
	return uc.bookingRepo.List(ctx, query)
}

// DeleteBooking удаляет бронирование от имени администратора. Тот же путь
// восстановления мест, что и у отмены пассажиром, но без проверки владельца
// и даты поездки.
func (uc *AdminUseCase) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("Booking deleted by admin",
		zap.String("pnr", booking.PNR),
		zap.String("username", booking.Username))

	return nil
}

// --- Reports ---

func (uc *AdminUseCase) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	return uc.statsRepo.Dashboard(ctx)
}

func (uc *AdminUseCase) Report(ctx context.Context) (*domain.Report, error) {
	return uc.statsRepo.Report(ctx)
}

func (uc *AdminUseCase) invalidateListing(ctx context.Context) {
	if err := uc.cacheRepo.Delete(ctx, trainListingCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate train listing cache", zap.Error(err))
	}
}
