package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

type mockBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	updatedStatus domain.BookingStatus
	updateCalls   int
	lastPage      int
	lastLimit     int
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return m.booking, m.getErr
}

func (m *mockBookingRepo) FindOccupying(_ context.Context, _ int64, _, _ time.Time, _ *int64) ([]*domain.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus, page, limit int) ([]*domain.Booking, int64, error) {
	m.lastPage = page
	m.lastLimit = limit
	return nil, 0, nil
}

func (m *mockBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	return nil, 0, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus, _ *string) error {
	m.updateCalls++
	m.updatedStatus = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		BookingRef:    "APEX-LX3F9A2B",
		UserID:        1,
		VehicleID:     7,
		PickupDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:   time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	svc := NewService(&mockBookingRepo{booking: confirmedBooking()}, nopLogger{})

	t.Run("owner can view", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 42, 1, false)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, 999, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin can view any booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 42, 999, true)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})
}

func TestUpdateStatus_Transitions(t *testing.T) {
	t.Run("confirmed to in_progress", func(t *testing.T) {
		repo := &mockBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "IN_PROGRESS"})

		require.NoError(t, err)
		assert.Equal(t, "IN_PROGRESS", resp.Status)
		assert.Equal(t, domain.StatusInProgress, repo.updatedStatus)
	})

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		booking := confirmedBooking()
		booking.Status = domain.StatusPending
		repo := &mockBookingRepo{booking: booking}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "COMPLETED"})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 0, repo.updateCalls)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		booking := confirmedBooking()
		booking.Status = domain.StatusCompleted
		svc := NewService(&mockBookingRepo{booking: booking}, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "IN_PROGRESS"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancellation not allowed through status update", func(t *testing.T) {
		repo := &mockBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "CANCELLED"})

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 0, repo.updateCalls)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewService(&mockBookingRepo{booking: confirmedBooking()}, nopLogger{})

		_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "PAUSED"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("admin notes saved with status", func(t *testing.T) {
		repo := &mockBookingRepo{booking: confirmedBooking()}
		svc := NewService(repo, nopLogger{})
		notes := "Выдан с полным баком"

		resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
			Status:     "IN_PROGRESS",
			AdminNotes: &notes,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AdminNotes)
		assert.Equal(t, notes, *resp.AdminNotes)
	})
}

func TestGetUserBookings_Pagination(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := NewService(repo, nopLogger{})

	t.Run("defaults applied", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.lastPage)
		assert.Equal(t, 20, repo.lastLimit)
	})

	t.Run("limit capped", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, Page: 3, Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, 3, repo.lastPage)
		assert.Equal(t, 100, repo.lastLimit)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		status := "BOGUS"
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
