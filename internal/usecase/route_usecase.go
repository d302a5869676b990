package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/usecase/dto"
)

// trainListingCacheKey - ключ кешированного листинга поездов; сбрасывается
// при любой правке каталога или маршрута
const trainListingCacheKey = "cache:trains:listing"

// RouteUseCase - use case управления маршрутами поездов
type RouteUseCase struct {
	routeRepo repository.RouteRepository
	trainRepo repository.TrainRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewRouteUseCase - создание нового RouteUseCase
func NewRouteUseCase(
	routeRepo repository.RouteRepository,
	trainRepo repository.TrainRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		routeRepo: routeRepo,
		trainRepo: trainRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// AddStop добавляет остановку в конец маршрута поезда (stop_order = max+1)
// и пересоздаёт сегменты из актуального порядка остановок.
func (uc *RouteUseCase) AddStop(ctx context.Context, trainID int64, req dto.AddStopRequest) (*domain.RouteStop, error) {
	if _, err := uc.trainRepo.GetByID(ctx, trainID); err != nil {
		return nil, err
	}

	stops, err := uc.routeRepo.ListByTrain(ctx, trainID)
	if err != nil {
		return nil, err
	}

	if domain.FindStopByStation(stops, req.StationID) != nil {
		return nil, errors.ErrInvalidSelection.WithMessage("Station is already on this train's route")
	}

	stop := &domain.RouteStop{
		TrainID:       trainID,
		StationID:     req.StationID,
		ArrivalTime:   req.ArrivalTime,
		DepartureTime: req.DepartureTime,
		StopOrder:     domain.NextStopOrder(stops),
	}

	created, err := uc.routeRepo.AddStop(ctx, stop)
	if err != nil {
		return nil, err
	}

	if err := uc.regenerateSegments(ctx, trainID); err != nil {
		return nil, err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("Route stop added",
		zap.Int64("train_id", trainID),
		zap.Int64("station_id", req.StationID),
		zap.Int("stop_order", created.StopOrder))

	return created, nil
}

// RemoveStop удаляет остановку и пересоздаёт сегменты. Удаление средней
// остановки не склеивает времена: сегменты просто перестраиваются по
// оставшемуся порядку (A-B-C-D минус B даёт A-C и C-D).
func (uc *RouteUseCase) RemoveStop(ctx context.Context, stopID int64) error {
	stop, err := uc.routeRepo.GetStopByID(ctx, stopID)
	if err != nil {
		return err
	}

	if err := uc.routeRepo.RemoveStop(ctx, stopID); err != nil {
		return err
	}

	if err := uc.regenerateSegments(ctx, stop.TrainID); err != nil {
		return err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("Route stop removed",
		zap.Int64("train_id", stop.TrainID),
		zap.Int64("stop_id", stopID))

	return nil
}

// ListRoute возвращает остановки поезда в порядке следования.
func (uc *RouteUseCase) ListRoute(ctx context.Context, trainID int64) ([]domain.RouteStop, error) {
	if _, err := uc.trainRepo.GetByID(ctx, trainID); err != nil {
		return nil, err
	}

	return uc.routeRepo.ListByTrain(ctx, trainID)
}

func (uc *RouteUseCase) regenerateSegments(ctx context.Context, trainID int64) error {
	stops, err := uc.routeRepo.ListByTrain(ctx, trainID)
	if err != nil {
		return err
	}

	return uc.routeRepo.ReplaceSegments(ctx, trainID, domain.BuildSegments(stops))
}

func (uc *RouteUseCase) invalidateListing(ctx context.Context) {
	if err := uc.cacheRepo.Delete(ctx, trainListingCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate train listing cache", zap.Error(err))
	}
}
