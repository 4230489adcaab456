package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

type mockBookingRepo struct {
	booking      *domain.Booking
	getErr       error
	confirmCalls int
	confirmErr   error
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return m.booking, m.getErr
}

func (m *mockBookingRepo) ConfirmPayment(_ context.Context, _ int64) error {
	m.confirmCalls++
	return m.confirmErr
}

type mockVehicleRepo struct {
	vehicle *domain.Vehicle
	err     error
}

func (m *mockVehicleRepo) GetByID(_ context.Context, _ int64) (*domain.Vehicle, error) {
	return m.vehicle, m.err
}

type mockUserRepo struct {
	user        *userRepo.User
	getErr      error
	addedPoints int64
	addCalls    int
}

func (m *mockUserRepo) GetByID(_ context.Context, _ int64) (*userRepo.User, error) {
	return m.user, m.getErr
}

func (m *mockUserRepo) AddLoyaltyPoints(_ context.Context, _ int64, points int64) error {
	m.addCalls++
	m.addedPoints = points
	return nil
}

type mockPaymentsClient struct {
	intent   *payments.PaymentIntent
	err      error
	getCalls int
}

func (m *mockPaymentsClient) GetIntent(_ context.Context, _ string) (*payments.PaymentIntent, error) {
	m.getCalls++
	return m.intent, m.err
}

// mockMailer передает письма через каналы, так как уведомления
// отправляются из отдельной горутины
type mockMailer struct {
	confirmations chan mailer.BookingEmail
	adminNotices  chan mailer.BookingEmail
}

func newMockMailer() *mockMailer {
	return &mockMailer{
		confirmations: make(chan mailer.BookingEmail, 1),
		adminNotices:  make(chan mailer.BookingEmail, 1),
	}
}

func (m *mockMailer) SendBookingConfirmation(data mailer.BookingEmail) error {
	m.confirmations <- data
	return nil
}

func (m *mockMailer) SendAdminNewBooking(data mailer.BookingEmail) error {
	m.adminNotices <- data
	return nil
}

type mockTxManager struct {
	calls int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking() *domain.Booking {
	intentID := "pi_test_123"
	return &domain.Booking{
		ID:              42,
		BookingRef:      "APEX-LX3F9A2B",
		UserID:          1,
		VehicleID:       7,
		PickupDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DropoffDate:     time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		PickupLocation:  "Dubai Marina",
		DropoffLocation: "Dubai Marina",
		TotalPrice:      3150.50,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentIntentID: &intentID,
	}
}

func TestConfirmPayment_Success(t *testing.T) {
	bookings := &mockBookingRepo{booking: pendingBooking()}
	users := &mockUserRepo{user: &userRepo.User{ID: 1, Email: "vip@example.com", Name: "Amir"}}
	pay := &mockPaymentsClient{intent: &payments.PaymentIntent{ID: "pi_test_123", Status: "succeeded"}}
	mail := newMockMailer()
	tx := &mockTxManager{}

	uc := NewUseCase(
		bookings,
		&mockVehicleRepo{vehicle: &domain.Vehicle{ID: 7, Name: "Huracan EVO", Brand: "Lamborghini"}},
		users,
		pay,
		mail,
		tx,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, int64(3150), resp.LoyaltyPoints)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, bookings.confirmCalls)
	assert.Equal(t, 1, users.addCalls)
	assert.Equal(t, int64(3150), users.addedPoints)

	select {
	case email := <-mail.confirmations:
		assert.Equal(t, "vip@example.com", email.RecipientEmail)
		assert.Equal(t, "Lamborghini Huracan EVO", email.VehicleName)
		assert.Equal(t, int64(3150), email.LoyaltyPoints)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was not sent")
	}

	select {
	case <-mail.adminNotices:
	case <-time.After(2 * time.Second):
		t.Fatal("admin email was not sent")
	}
}

func TestConfirmPayment_AccessDenied(t *testing.T) {
	uc := NewUseCase(
		&mockBookingRepo{booking: pendingBooking()},
		&mockVehicleRepo{},
		&mockUserRepo{},
		&mockPaymentsClient{},
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirmPayment_AlreadyConfirmed(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentPaid

	uc := NewUseCase(
		&mockBookingRepo{booking: booking},
		&mockVehicleRepo{},
		&mockUserRepo{},
		&mockPaymentsClient{},
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

// Два параллельных подтверждения читают одно PENDING-состояние,
// но условный UPDATE пропускает только одно из них: проигравшее
// получает ErrAlreadyConfirmed, и баллы не начисляются повторно
func TestConfirmPayment_ConcurrentConfirmAwardsPointsOnce(t *testing.T) {
	bookings := &mockBookingRepo{
		booking:    pendingBooking(),
		confirmErr: bookingRepo.ErrStateConflict,
	}
	users := &mockUserRepo{user: &userRepo.User{ID: 1}}
	pay := &mockPaymentsClient{intent: &payments.PaymentIntent{ID: "pi_test_123", Status: "succeeded"}}

	uc := NewUseCase(
		bookings,
		&mockVehicleRepo{},
		users,
		pay,
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
	assert.Equal(t, 0, users.addCalls)
}

func TestConfirmPayment_CancelledBooking(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusCancelled

	uc := NewUseCase(
		&mockBookingRepo{booking: booking},
		&mockVehicleRepo{},
		&mockUserRepo{},
		&mockPaymentsClient{},
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
	assert.ErrorIs(t, err, ErrNotAwaitingPayment)
}

func TestConfirmPayment_IntentNotSucceeded(t *testing.T) {
	bookings := &mockBookingRepo{booking: pendingBooking()}
	pay := &mockPaymentsClient{intent: &payments.PaymentIntent{ID: "pi_test_123", Status: "requires_payment_method"}}

	uc := NewUseCase(
		bookings,
		&mockVehicleRepo{},
		&mockUserRepo{},
		pay,
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	assert.ErrorIs(t, err, ErrPaymentNotSucceeded)
	assert.Equal(t, 0, bookings.confirmCalls)
}

func TestConfirmPayment_MissingIntent(t *testing.T) {
	booking := pendingBooking()
	booking.PaymentIntentID = nil

	uc := NewUseCase(
		&mockBookingRepo{booking: booking},
		&mockVehicleRepo{},
		&mockUserRepo{},
		&mockPaymentsClient{},
		newMockMailer(),
		&mockTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})
	assert.ErrorIs(t, err, ErrNoPaymentIntent)
}

func TestConfirmPayment_FreeBookingSkipsStripe(t *testing.T) {
	booking := pendingBooking()
	booking.TotalPrice = 0
	booking.PaymentIntentID = nil

	bookings := &mockBookingRepo{booking: booking}
	users := &mockUserRepo{user: &userRepo.User{ID: 1, Email: "vip@example.com"}}
	pay := &mockPaymentsClient{}
	mail := newMockMailer()

	uc := NewUseCase(
		bookings,
		&mockVehicleRepo{vehicle: &domain.Vehicle{ID: 7, Name: "Urus", Brand: "Lamborghini"}},
		users,
		pay,
		mail,
		&mockTxManager{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.LoyaltyPoints)
	assert.Equal(t, 0, pay.getCalls)
	assert.Equal(t, 1, bookings.confirmCalls)
	// Нулевые баллы не начисляются
	assert.Equal(t, 0, users.addCalls)

	select {
	case <-mail.confirmations:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was not sent")
	}
}
