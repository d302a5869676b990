package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/railconnect/internal/domain"
)

func stop(train, station int64, order int) domain.RouteStop {
	return domain.RouteStop{TrainID: train, StationID: station, StopOrder: order}
}

func TestBuildSegments_AdjacentPairs(t *testing.T) {
	stops := []domain.RouteStop{
		stop(1, 10, 1),
		stop(1, 20, 2),
		stop(1, 30, 3),
	}

	segments := domain.BuildSegments(stops)

	assert.Len(t, segments, 2)
	assert.Equal(t, int64(10), segments[0].StartStationID)
	assert.Equal(t, int64(20), segments[0].EndStationID)
	assert.Equal(t, 1, segments[0].SegmentOrder)
	assert.Equal(t, int64(20), segments[1].StartStationID)
	assert.Equal(t, int64(30), segments[1].EndStationID)
	assert.Equal(t, 2, segments[1].SegmentOrder)
}

func TestBuildSegments_UnorderedInput(t *testing.T) {
	// Порядок элементов на входе не важен - важен только StopOrder
	stops := []domain.RouteStop{
		stop(1, 30, 3),
		stop(1, 10, 1),
		stop(1, 20, 2),
	}

	segments := domain.BuildSegments(stops)

	assert.Len(t, segments, 2)
	assert.Equal(t, int64(10), segments[0].StartStationID)
	assert.Equal(t, int64(30), segments[1].EndStationID)
}

func TestBuildSegments_Idempotent(t *testing.T) {
	stops := []domain.RouteStop{
		stop(1, 10, 1),
		stop(1, 20, 2),
		stop(1, 30, 3),
		stop(1, 40, 4),
	}

	first := domain.BuildSegments(stops)
	second := domain.BuildSegments(stops)

	assert.Equal(t, first, second, "same stop ordering must always yield the same segment set")
}

func TestBuildSegments_GapsInStopOrder(t *testing.T) {
	// Пропуски в нумерации допустимы, соседство определяется порядком
	stops := []domain.RouteStop{
		stop(1, 10, 1),
		stop(1, 30, 5),
		stop(1, 40, 9),
	}

	segments := domain.BuildSegments(stops)

	assert.Len(t, segments, 2)
	assert.Equal(t, int64(10), segments[0].StartStationID)
	assert.Equal(t, int64(30), segments[0].EndStationID)
	assert.Equal(t, int64(30), segments[1].StartStationID)
	assert.Equal(t, int64(40), segments[1].EndStationID)
}

func TestBuildSegments_MiddleStopRemoved(t *testing.T) {
	// A->B->C->D без B: сегменты A->C и C->D, мосты не достраиваются
	full := []domain.RouteStop{
		stop(1, 1, 1), // A
		stop(1, 2, 2), // B
		stop(1, 3, 3), // C
		stop(1, 4, 4), // D
	}
	withoutB := []domain.RouteStop{full[0], full[2], full[3]}

	segments := domain.BuildSegments(withoutB)

	assert.Len(t, segments, 2)
	assert.Equal(t, int64(1), segments[0].StartStationID)
	assert.Equal(t, int64(3), segments[0].EndStationID)
	assert.Equal(t, int64(3), segments[1].StartStationID)
	assert.Equal(t, int64(4), segments[1].EndStationID)
}

func TestBuildSegments_TooFewStops(t *testing.T) {
	assert.Nil(t, domain.BuildSegments(nil))
	assert.Nil(t, domain.BuildSegments([]domain.RouteStop{stop(1, 10, 1)}))
}

func TestNextStopOrder(t *testing.T) {
	assert.Equal(t, 1, domain.NextStopOrder(nil))
	assert.Equal(t, 4, domain.NextStopOrder([]domain.RouteStop{
		stop(1, 10, 1),
		stop(1, 20, 3),
	}))
}

func TestFindStopByStation(t *testing.T) {
	stops := []domain.RouteStop{
		stop(1, 10, 1),
		stop(1, 20, 2),
	}

	found := domain.FindStopByStation(stops, 20)
	assert.NotNil(t, found)
	assert.Equal(t, 2, found.StopOrder)

	assert.Nil(t, domain.FindStopByStation(stops, 99))
}
