package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	pickup := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	dropoff := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingColumns).AddRow(
		int64(42), "APEX-LX3F9A2B", int64(1), int64(7),
		pickup, dropoff, 3, "Dubai Marina", "Dubai Marina",
		"{gps,wifi}", nil, 3000.0, 150.0, 0.0, 3150.0,
		"PENDING", "PENDING", "pi_test_123", nil, nil, nil,
		time.Now(), time.Now(),
	)
}

func TestFindOccupying_InclusiveBoundaries(t *testing.T) {
	repo, mock := newMock(t)

	pickup := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	dropoff := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	// Пересечение проверяется включительно: pickup_date <= dropoff AND dropoff_date >= pickup.
	// Вне транзакции запрос не должен блокировать строки, поэтому
	// шаблон заякорен на последнем плейсхолдере - FOR UPDATE отсутствует
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE vehicle_id = \$1 AND status IN \(\$2,\$3,\$4\) AND pickup_date <= \$5 AND dropoff_date >= \$6$`).
		WithArgs(int64(7), "PENDING", "CONFIRMED", "IN_PROGRESS", dropoff, pickup).
		WillReturnRows(bookingRows())

	bookings, err := repo.FindOccupying(context.Background(), 7, pickup, dropoff, nil)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(42), bookings[0].ID)
	assert.Equal(t, "APEX-LX3F9A2B", bookings[0].BookingRef)
	assert.Equal(t, []string{"gps", "wifi"}, []string(bookings[0].Extras))
	require.NotNil(t, bookings[0].PaymentIntentID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOccupying_ExcludesBooking(t *testing.T) {
	repo, mock := newMock(t)

	pickup := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	dropoff := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
	excludeID := int64(42)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE .+ AND id <> \$7$`).
		WithArgs(int64(7), "PENDING", "CONFIRMED", "IN_PROGRESS", dropoff, pickup, excludeID).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.FindOccupying(context.Background(), 7, pickup, dropoff, &excludeID)

	require.NoError(t, err)
	assert.Empty(t, bookings)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Переход в CONFIRMED/PAID выполняется одним UPDATE с предикатом
// исходного состояния - конкурирующее подтверждение затронет ноль строк
func TestConfirmPayment(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, payment_status = \$2, updated_at = NOW\(\) WHERE id = \$3 AND status = \$4 AND payment_status = \$5`).
		WithArgs("CONFIRMED", "PAID", int64(42), "PENDING", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ConfirmPayment(context.Background(), 42)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_StateConflict(t *testing.T) {
	repo, mock := newMock(t)

	// Ноль затронутых строк, но бронирование существует -
	// значит, состояние уже изменено конкурентом
	mock.ExpectExec(`UPDATE bookings SET status = \$1, payment_status = \$2`).
		WithArgs("CONFIRMED", "PAID", int64(42), "PENDING", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(bookingRows())

	err := repo.ConfirmPayment(context.Background(), 42)

	assert.ErrorIs(t, err, ErrStateConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, payment_status = \$2`).
		WithArgs("CONFIRMED", "PAID", int64(404), "PENDING", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	err := repo.ConfirmPayment(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, payment_status = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status IN \(\$4,\$5\)`).
		WithArgs("CANCELLED", "REFUNDED", int64(42), "PENDING", "CONFIRMED").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 42, domain.PaymentRefunded)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_StateConflict(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs("CANCELLED", "REFUNDED", int64(42), "PENDING", "CONFIRMED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(bookingRows())

	err := repo.Cancel(context.Background(), 42, domain.PaymentRefunded)

	assert.ErrorIs(t, err, ErrStateConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs("CANCELLED", "PENDING", int64(404), "PENDING", "CONFIRMED").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	err := repo.Cancel(context.Background(), 404, domain.PaymentPending)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
