package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

type mockBookingRepo struct {
	booking         *domain.Booking
	getErr          error
	cancelCalls     int
	cancelledStatus domain.PaymentStatus
	cancelErr       error
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return m.booking, m.getErr
}

func (m *mockBookingRepo) Cancel(_ context.Context, _ int64, paymentStatus domain.PaymentStatus) error {
	m.cancelCalls++
	m.cancelledStatus = paymentStatus
	return m.cancelErr
}

type mockPaymentsClient struct {
	refund          *payments.Refund
	refundErr       error
	refundCalls     int
	cancelIntentErr error
	cancelCalls     int
}

func (m *mockPaymentsClient) Refund(_ context.Context, _ string) (*payments.Refund, error) {
	m.refundCalls++
	return m.refund, m.refundErr
}

func (m *mockPaymentsClient) CancelIntent(_ context.Context, _ string) error {
	m.cancelCalls++
	return m.cancelIntentErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	intentID := "pi_test_123"
	return &domain.Booking{
		ID:              42,
		BookingRef:      "APEX-LX3F9A2B",
		UserID:          1,
		VehicleID:       7,
		PickupDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:     time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		TotalPrice:      3000,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentIntentID: &intentID,
	}
}

func TestCancelBooking_UnpaidCancelsIntent(t *testing.T) {
	bookings := &mockBookingRepo{booking: testBooking()}
	pay := &mockPaymentsClient{}
	uc := NewUseCase(bookings, pay, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	require.NoError(t, err)
	assert.False(t, resp.Refunded)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)

	assert.Equal(t, 1, pay.cancelCalls)
	assert.Equal(t, 0, pay.refundCalls)
	assert.Equal(t, 1, bookings.cancelCalls)
	assert.Equal(t, domain.PaymentPending, bookings.cancelledStatus)
}

func TestCancelBooking_PaidRequiresRefund(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentPaid

	bookings := &mockBookingRepo{booking: booking}
	pay := &mockPaymentsClient{refund: &payments.Refund{ID: "re_1", Status: "succeeded", Amount: 300000}}
	uc := NewUseCase(bookings, pay, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	require.NoError(t, err)
	assert.True(t, resp.Refunded)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)

	assert.Equal(t, 1, pay.refundCalls)
	assert.Equal(t, domain.PaymentRefunded, bookings.cancelledStatus)
}

func TestCancelBooking_RefundFailureBlocksCancellation(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentPaid

	bookings := &mockBookingRepo{booking: booking}
	pay := &mockPaymentsClient{refundErr: payments.ErrRefundFailed}
	uc := NewUseCase(bookings, pay, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	assert.ErrorIs(t, err, ErrRefundFailed)
	// Бронирование остается неотмененным
	assert.Equal(t, 0, bookings.cancelCalls)
}

func TestCancelBooking_IntentCancelFailureDoesNotBlock(t *testing.T) {
	bookings := &mockBookingRepo{booking: testBooking()}
	pay := &mockPaymentsClient{cancelIntentErr: payments.ErrIntentNotFound}
	uc := NewUseCase(bookings, pay, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	require.NoError(t, err)
	assert.False(t, resp.Refunded)
	assert.Equal(t, 1, bookings.cancelCalls)
}

func TestCancelBooking_AccessControl(t *testing.T) {
	t.Run("stranger denied", func(t *testing.T) {
		uc := NewUseCase(&mockBookingRepo{booking: testBooking()}, &mockPaymentsClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin can cancel someone else's booking", func(t *testing.T) {
		bookings := &mockBookingRepo{booking: testBooking()}
		uc := NewUseCase(bookings, &mockPaymentsClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 999, IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, 1, bookings.cancelCalls)
	})
}

func TestCancelBooking_StateChecks(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		booking := testBooking()
		booking.Status = domain.StatusCancelled
		uc := NewUseCase(&mockBookingRepo{booking: booking}, &mockPaymentsClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("in progress cannot be cancelled", func(t *testing.T) {
		booking := testBooking()
		booking.Status = domain.StatusInProgress
		uc := NewUseCase(&mockBookingRepo{booking: booking}, &mockPaymentsClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		booking := testBooking()
		booking.Status = domain.StatusCompleted
		uc := NewUseCase(&mockBookingRepo{booking: booking}, &mockPaymentsClient{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

// Конкурирующая отмена того же бронирования проходит проверки состояния
// на устаревшем снимке, но условный UPDATE пропускает только одну из них
func TestCancelBooking_ConcurrentCancel(t *testing.T) {
	bookings := &mockBookingRepo{
		booking:   testBooking(),
		cancelErr: bookingRepo.ErrStateConflict,
	}
	uc := NewUseCase(bookings, &mockPaymentsClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBooking_RepositoryError(t *testing.T) {
	bookings := &mockBookingRepo{getErr: errors.New("db down")}
	uc := NewUseCase(bookings, &mockPaymentsClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
