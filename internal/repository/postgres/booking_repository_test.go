package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/railconnect/internal/domain"
	"github.com/railconnect/internal/domain/repository"
	"github.com/railconnect/internal/pkg/errors"
	"github.com/railconnect/internal/repository/postgres"
	"github.com/railconnect/internal/repository/postgres/testhelpers"
)

// BookingRepositoryTestSuite тестирует все методы BookingRepository
type BookingRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.BookingRepository
	ctx    context.Context

	trainID       int64
	fromStationID int64
	toStationID   int64
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *BookingRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	// Применение миграций (пропускаем если таблицы уже существуют)
	_ = testhelpers.ApplyMigrations(
		s.testDB.DB.DB,
		"../../../migrations",
	)

	s.repo = postgres.NewBookingRepository(
		postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger),
	)
}

// TearDownSuite выполняется один раз после всех тестов
func (s *BookingRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest выполняется перед каждым тестом
func (s *BookingRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	err := s.testDB.Cleanup(s.ctx)
	s.Require().NoError(err, "Failed to cleanup test database")

	s.fromStationID, err = testhelpers.SeedStation(s.testDB.DB.DB, "Alpha Central", "ALC")
	s.Require().NoError(err)
	s.toStationID, err = testhelpers.SeedStation(s.testDB.DB.DB, "Gamma Terminal", "GMT")
	s.Require().NoError(err)

	s.trainID, err = testhelpers.SeedTrain(s.testDB.DB.DB, "CE-101", "Coastal Express", 10, "50.00")
	s.Require().NoError(err)
}

func (s *BookingRepositoryTestSuite) newBooking(pnr string, passengers int) *domain.Booking {
	return &domain.Booking{
		PNR:              pnr,
		Username:         "alice",
		TrainID:          s.trainID,
		FromStationID:    s.fromStationID,
		ToStationID:      s.toStationID,
		TravelDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Passengers:       passengers,
		PassengerDetails: "Alice, Bob",
		TotalPrice:       decimal.RequireFromString("100.00"),
		Status:           domain.BookingStatusConfirmed,
	}
}

// ============================================================================
// Create Tests
// ============================================================================

func (s *BookingRepositoryTestSuite) TestCreate_DecrementsSeats() {
	created, err := s.repo.Create(s.ctx, s.newBooking("PNR100001", 3))

	s.NoError(err)
	s.NotZero(created.ID)
	s.NotZero(created.CreatedAt)

	seats, err := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(err)
	s.Equal(7, seats)
}

func (s *BookingRepositoryTestSuite) TestCreate_InsufficientSeats() {
	_, err := s.repo.Create(s.ctx, s.newBooking("PNR100002", 11))

	s.ErrorIs(err, errors.ErrInsufficientSeats)

	// Счётчик не изменился, запись не вставлена
	seats, seatsErr := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(seatsErr)
	s.Equal(10, seats)

	exists, existsErr := s.repo.ExistsPNR(s.ctx, "PNR100002")
	s.NoError(existsErr)
	s.False(exists)
}

func (s *BookingRepositoryTestSuite) TestCreate_DuplicatePNR() {
	_, err := s.repo.Create(s.ctx, s.newBooking("PNR100003", 1))
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, s.newBooking("PNR100003", 1))
	s.ErrorIs(err, errors.ErrDuplicateKey)

	// Места второй попытки вернулись при откате транзакции
	seats, seatsErr := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(seatsErr)
	s.Equal(9, seats)
}

func (s *BookingRepositoryTestSuite) TestCreate_ConcurrentNeverOversells() {
	// 10 мест, 8 конкурентных бронирований по 3 места: максимум 3 пройдут
	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := s.repo.Create(s.ctx, s.newBooking(fmt.Sprintf("PNR20000%d", n), 3))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, errors.ErrInsufficientSeats)
		}
	}
	s.Equal(3, succeeded)

	seats, err := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(err)
	s.Equal(1, seats)
}

// ============================================================================
// Delete Tests
// ============================================================================

func (s *BookingRepositoryTestSuite) TestDelete_RestoresSeats() {
	created, err := s.repo.Create(s.ctx, s.newBooking("PNR100004", 4))
	s.Require().NoError(err)

	err = s.repo.Delete(s.ctx, created.ID)
	s.NoError(err)

	seats, err := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(err)
	s.Equal(10, seats)

	_, err = s.repo.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *BookingRepositoryTestSuite) TestDelete_RestoreCappedAtTotalSeats() {
	created, err := s.repo.Create(s.ctx, s.newBooking("PNR100005", 2))
	s.Require().NoError(err)

	// Администратор уменьшил вместимость после бронирования
	_, err = s.testDB.DB.ExecContext(s.ctx,
		"UPDATE trains SET total_seats = 5, available_seats = 5 WHERE id = $1", s.trainID)
	s.Require().NoError(err)

	err = s.repo.Delete(s.ctx, created.ID)
	s.NoError(err)

	seats, err := testhelpers.GetAvailableSeats(s.testDB.DB.DB, s.trainID)
	s.NoError(err)
	s.Equal(5, seats, "restore must not exceed total_seats")
}

func (s *BookingRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(s.ctx, 99999)
	s.ErrorIs(err, errors.ErrNotFound)
}

// ============================================================================
// Lookup Tests
// ============================================================================

func (s *BookingRepositoryTestSuite) TestGetByPNR_JoinsTrainAndStations() {
	created, err := s.repo.Create(s.ctx, s.newBooking("PNR100006", 2))
	s.Require().NoError(err)

	booking, err := s.repo.GetByPNR(s.ctx, "PNR100006")
	s.NoError(err)
	s.Equal(created.ID, booking.ID)
	s.Equal("Coastal Express", booking.TrainName)
	s.Equal("CE-101", booking.TrainNumber)
	s.Equal("Alpha Central", booking.FromStationName)
	s.Equal("Gamma Terminal", booking.ToStationName)
	s.True(booking.TotalPrice.Equal(decimal.RequireFromString("100.00")))
}

func (s *BookingRepositoryTestSuite) TestGetByPNR_NotFound() {
	_, err := s.repo.GetByPNR(s.ctx, "PNR999999")
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *BookingRepositoryTestSuite) TestExistsPNR() {
	_, err := s.repo.Create(s.ctx, s.newBooking("PNR100007", 1))
	s.Require().NoError(err)

	exists, err := s.repo.ExistsPNR(s.ctx, "PNR100007")
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsPNR(s.ctx, "PNR100008")
	s.NoError(err)
	s.False(exists)
}

func (s *BookingRepositoryTestSuite) TestListByUsername_NewestFirst() {
	first, err := s.repo.Create(s.ctx, s.newBooking("PNR100009", 1))
	s.Require().NoError(err)
	second, err := s.repo.Create(s.ctx, s.newBooking("PNR100010", 1))
	s.Require().NoError(err)

	other := s.newBooking("PNR100011", 1)
	other.Username = "bob"
	_, err = s.repo.Create(s.ctx, other)
	s.Require().NoError(err)

	bookings, err := s.repo.ListByUsername(s.ctx, "alice")
	s.NoError(err)
	s.Len(bookings, 2)
	s.Equal(second.ID, bookings[0].ID)
	s.Equal(first.ID, bookings[1].ID)
}

func (s *BookingRepositoryTestSuite) TestList_FilterByPNRSubstring() {
	_, err := s.repo.Create(s.ctx, s.newBooking("PNR100012", 1))
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, s.newBooking("PNR340012", 1))
	s.Require().NoError(err)

	bookings, err := s.repo.List(s.ctx, "PNR34")
	s.NoError(err)
	s.Len(bookings, 1)
	s.Equal("PNR340012", bookings[0].PNR)

	all, err := s.repo.List(s.ctx, "")
	s.NoError(err)
	s.Len(all, 2)
}

// ============================================================================
// Test Suite Runner
// ============================================================================

func TestBookingRepositorySuite(t *testing.T) {
	suite.Run(t, new(BookingRepositoryTestSuite))
}
