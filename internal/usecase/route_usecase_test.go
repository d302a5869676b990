package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/usecase"
	"github.com/railconnect/internal/usecase/dto"
)

func newRouteUseCase(
	routeRepo *MockRouteRepository,
	trainRepo *MockTrainRepository,
	cacheRepo *MockCacheRepository,
) *usecase.RouteUseCase {
	return usecase.NewRouteUseCase(routeRepo, trainRepo, cacheRepo, zap.NewNop())
}

func TestRouteUseCase_AddStop(t *testing.T) {
	ctx := context.Background()
	train := &domain.Train{ID: 1, Number: "EXP-100", Name: "Express"}

	t.Run("appends with next stop order and regenerates segments", func(t *testing.T) {
		routeRepo := &MockRouteRepository{}
		trainRepo := &MockTrainRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newRouteUseCase(routeRepo, trainRepo, cacheRepo)

		existing := []domain.RouteStop{
			{ID: 1, TrainID: 1, StationID: 10, StopOrder: 1},
			{ID: 2, TrainID: 1, StationID: 20, StopOrder: 2},
		}
		afterAdd := append(append([]domain.RouteStop{}, existing...),
			domain.RouteStop{ID: 3, TrainID: 1, StationID: 30, StopOrder: 3})

		trainRepo.On("GetByID", ctx, int64(1)).Return(train, nil)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return(existing, nil).Once()
		routeRepo.On("AddStop", ctx, mock.MatchedBy(func(s *domain.RouteStop) bool {
			return s.TrainID == 1 && s.StationID == 30 && s.StopOrder == 3
		})).Return(&domain.RouteStop{ID: 3, TrainID: 1, StationID: 30, StopOrder: 3}, nil)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return(afterAdd, nil).Once()
		routeRepo.On("ReplaceSegments", ctx, int64(1), mock.MatchedBy(func(segs []domain.Segment) bool {
			return len(segs) == 2 &&
				segs[0].StartStationID == 10 && segs[0].EndStationID == 20 &&
				segs[1].StartStationID == 20 && segs[1].EndStationID == 30
		})).Return(nil)
		cacheRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		stop, err := uc.AddStop(ctx, 1, dto.AddStopRequest{
			StationID:     30,
			ArrivalTime:   "12:00",
			DepartureTime: "12:10",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, stop.StopOrder)
		routeRepo.AssertExpectations(t)
	})

	t.Run("first stop of an empty route gets order 1", func(t *testing.T) {
		routeRepo := &MockRouteRepository{}
		trainRepo := &MockTrainRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newRouteUseCase(routeRepo, trainRepo, cacheRepo)

		trainRepo.On("GetByID", ctx, int64(1)).Return(train, nil)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return([]domain.RouteStop{}, nil).Once()
		routeRepo.On("AddStop", ctx, mock.MatchedBy(func(s *domain.RouteStop) bool {
			return s.StopOrder == 1
		})).Return(&domain.RouteStop{ID: 1, TrainID: 1, StationID: 10, StopOrder: 1}, nil)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return([]domain.RouteStop{
			{ID: 1, TrainID: 1, StationID: 10, StopOrder: 1},
		}, nil).Once()
		// Одна остановка - сегментов нет
		routeRepo.On("ReplaceSegments", ctx, int64(1), mock.MatchedBy(func(segs []domain.Segment) bool {
			return len(segs) == 0
		})).Return(nil)
		cacheRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		_, err := uc.AddStop(ctx, 1, dto.AddStopRequest{
			StationID:     10,
			ArrivalTime:   "08:00",
			DepartureTime: "08:10",
		})
		require.NoError(t, err)
	})

	t.Run("duplicate station is rejected", func(t *testing.T) {
		routeRepo := &MockRouteRepository{}
		trainRepo := &MockTrainRepository{}
		uc := newRouteUseCase(routeRepo, trainRepo, &MockCacheRepository{})

		trainRepo.On("GetByID", ctx, int64(1)).Return(train, nil)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return([]domain.RouteStop{
			{ID: 1, TrainID: 1, StationID: 10, StopOrder: 1},
		}, nil)

		_, err := uc.AddStop(ctx, 1, dto.AddStopRequest{
			StationID:     10,
			ArrivalTime:   "08:00",
			DepartureTime: "08:10",
		})
		assert.ErrorIs(t, err, errors.ErrInvalidSelection)
		routeRepo.AssertNotCalled(t, "AddStop", mock.Anything, mock.Anything)
	})

	t.Run("unknown train", func(t *testing.T) {
		trainRepo := &MockTrainRepository{}
		uc := newRouteUseCase(&MockRouteRepository{}, trainRepo, &MockCacheRepository{})

		trainRepo.On("GetByID", ctx, int64(404)).Return(nil, errors.ErrNotFound)

		_, err := uc.AddStop(ctx, 404, dto.AddStopRequest{StationID: 10})
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

func TestRouteUseCase_RemoveStop(t *testing.T) {
	ctx := context.Background()

	t.Run("removing a middle stop rebuilds adjacent pairs without bridging times", func(t *testing.T) {
		routeRepo := &MockRouteRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newRouteUseCase(routeRepo, &MockTrainRepository{}, cacheRepo)

		routeRepo.On("GetStopByID", ctx, int64(2)).Return(&domain.RouteStop{
			ID: 2, TrainID: 1, StationID: 20, StopOrder: 2,
		}, nil)
		routeRepo.On("RemoveStop", ctx, int64(2)).Return(nil)
		// Остались A(1), C(3), D(4)
		routeRepo.On("ListByTrain", ctx, int64(1)).Return([]domain.RouteStop{
			{ID: 1, TrainID: 1, StationID: 10, StopOrder: 1},
			{ID: 3, TrainID: 1, StationID: 30, StopOrder: 3},
			{ID: 4, TrainID: 1, StationID: 40, StopOrder: 4},
		}, nil)
		routeRepo.On("ReplaceSegments", ctx, int64(1), mock.MatchedBy(func(segs []domain.Segment) bool {
			return len(segs) == 2 &&
				segs[0].StartStationID == 10 && segs[0].EndStationID == 30 &&
				segs[1].StartStationID == 30 && segs[1].EndStationID == 40
		})).Return(nil)
		cacheRepo.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		err := uc.RemoveStop(ctx, 2)
		require.NoError(t, err)
		routeRepo.AssertExpectations(t)
	})

	t.Run("missing stop", func(t *testing.T) {
		routeRepo := &MockRouteRepository{}
		uc := newRouteUseCase(routeRepo, &MockTrainRepository{}, &MockCacheRepository{})

		routeRepo.On("GetStopByID", ctx, int64(404)).Return(nil, errors.ErrNotFound)

		err := uc.RemoveStop(ctx, 404)
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}
