package repository

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingRepoMock(t *testing.T) (pgxmock.PgxPoolIface, BookingRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewBookingRepository(mock, zap.NewNop())
}

func testBooking() *entity.Booking {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:    "ORD-1001",
		ListingID:  uuid.New(),
		TouristID:  uuid.New(),
		SlotStart:  now,
		SlotEnd:    now.Add(time.Hour),
		GroupSize:  2,
		TotalPrice: 100,
		Status:     entity.BookingStatusPending,
	}
}

func TestCreateAdmittedInsertsWhenCapacityLeft(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	booking := testBooking()

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			booking.ID, booking.OrderID, booking.ListingID, booking.TouristID,
			booking.SlotStart, booking.SlotEnd, booking.GroupSize, booking.TotalPrice,
			booking.Status, booking.CreatedAt, booking.UpdatedAt, 4,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	admitted, err := repo.CreateAdmitted(context.Background(), booking, 4)
	require.NoError(t, err)
	assert.True(t, admitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdmittedRejectsWhenFull(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	booking := testBooking()

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			booking.ID, booking.OrderID, booking.ListingID, booking.TouristID,
			booking.SlotStart, booking.SlotEnd, booking.GroupSize, booking.TotalPrice,
			booking.Status, booking.CreatedAt, booking.UpdatedAt, 4,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	admitted, err := repo.CreateAdmitted(context.Background(), booking, 4)
	require.NoError(t, err)
	assert.False(t, admitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmAdmitted(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	bookingID := uuid.New()

	mock.ExpectExec("UPDATE bookings b").
		WithArgs(bookingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	admitted, err := repo.ConfirmAdmitted(context.Background(), bookingID)
	require.NoError(t, err)
	assert.True(t, admitted)

	mock.ExpectExec("UPDATE bookings b").
		WithArgs(bookingID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	admitted, err = repo.ConfirmAdmitted(context.Background(), bookingID)
	require.NoError(t, err)
	assert.False(t, admitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumOverlapping(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	listingID := uuid.New()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(listingID, []string{"PENDING", "CONFIRMED"}, start, end).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(3))

	sum, err := repo.SumOverlapping(context.Background(), listingID, start, end,
		[]entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, 3, sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNoRows(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	bookingID := uuid.New()

	mock.ExpectQuery("SELECT").
		WithArgs(bookingID).
		WillReturnError(pgx.ErrNoRows)

	booking, err := repo.FindByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Nil(t, booking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	mock, repo := newBookingRepoMock(t)
	bookingID := uuid.New()

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(bookingID, entity.BookingStatusCancelled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), bookingID, entity.BookingStatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
