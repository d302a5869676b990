package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/usecase/dto"
)

// routelessPlaceholder показывается в листинге вместо станций поезда,
// у которого маршрут ещё не настроен
const routelessPlaceholder = "Route not configured"

// SearchUseCase - use case поиска поездов
type SearchUseCase struct {
	trainRepo   repository.TrainRepository
	stationRepo repository.StationRepository
	routeRepo   repository.RouteRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	trainRepo repository.TrainRepository,
	stationRepo repository.StationRepository,
	routeRepo repository.RouteRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SearchUseCase {
	return &SearchUseCase{
		trainRepo:   trainRepo,
		stationRepo: stationRepo,
		routeRepo:   routeRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// Search возвращает поезда между станциями. Пустые запросы дают полный
// листинг каталога (включая поезда без маршрута); при поиске поезд попадает
// в выдачу, только если обе станции лежат на его маршруте в порядке
// следования. Порядок выдачи - порядок каталога.
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchTrainsRequest) (*dto.SearchResponse, error) {
	if req.From == "" && req.To == "" {
		return uc.listing(ctx)
	}
	if req.From == "" || req.To == "" {
		return nil, errors.ErrInvalidRequest.WithMessage("Both from and to are required for a search")
	}

	from, err := uc.stationRepo.FindByName(ctx, req.From)
	if err != nil {
		return nil, err
	}
	to, err := uc.stationRepo.FindByName(ctx, req.To)
	if err != nil {
		return nil, err
	}
	if from.ID == to.ID {
		return nil, errors.ErrSameStation
	}

	trains, err := uc.trainRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResult, 0, len(trains))
	for _, train := range trains {
		stops, err := uc.routeRepo.ListByTrain(ctx, train.ID)
		if err != nil {
			return nil, err
		}

		fromStop := domain.FindStopByStation(stops, from.ID)
		toStop := domain.FindStopByStation(stops, to.ID)
		if fromStop == nil || toStop == nil || fromStop.StopOrder >= toStop.StopOrder {
			continue
		}

		segments := domain.SegmentCount(fromStop.StopOrder, toStop.StopOrder)
		price := domain.Fare(train.FarePerSegment, segments, 1)

		results = append(results, dto.SearchResult{
			TrainID:        train.ID,
			TrainNumber:    train.Number,
			TrainName:      train.Name,
			FromStation:    fromStop.StationName,
			ToStation:      toStop.StationName,
			DepartureTime:  fromStop.DepartureTime,
			ArrivalTime:    toStop.ArrivalTime,
			AvailableSeats: train.AvailableSeats,
			Price:          price.StringFixed(2),
		})
	}

	return &dto.SearchResponse{
		Results: results,
		Total:   len(results),
	}, nil
}

// listing - нефильтрованный каталог поездов, кешируется в redis.
func (uc *SearchUseCase) listing(ctx context.Context) (*dto.SearchResponse, error) {
	if cached, err := uc.cacheRepo.Get(ctx, trainListingCacheKey); err == nil && cached != nil {
		var resp dto.SearchResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Failed to unmarshal cached train listing", zap.Error(err))
	}

	trains, err := uc.trainRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	results := make([]dto.SearchResult, 0, len(trains))
	for _, train := range trains {
		stops, err := uc.routeRepo.ListByTrain(ctx, train.ID)
		if err != nil {
			return nil, err
		}

		result := dto.SearchResult{
			TrainID:        train.ID,
			TrainNumber:    train.Number,
			TrainName:      train.Name,
			FromStation:    routelessPlaceholder,
			ToStation:      routelessPlaceholder,
			AvailableSeats: train.AvailableSeats,
			Price:          train.FarePerSegment.StringFixed(2),
		}

		if len(stops) >= 2 {
			first, last := stops[0], stops[len(stops)-1]
			result.FromStation = first.StationName
			result.ToStation = last.StationName
			result.DepartureTime = first.DepartureTime
			result.ArrivalTime = last.ArrivalTime
		}

		results = append(results, result)
	}

	resp := &dto.SearchResponse{
		Results: results,
		Total:   len(results),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, trainListingCacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache train listing", zap.Error(err))
		}
	}

	return resp, nil
}
