package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func couponRow() *sqlmock.Rows {
	expiresAt := time.Now().AddDate(0, 1, 0)
	return sqlmock.NewRows([]string{
		"id", "code", "discount", "type", "min_order", "max_uses",
		"used_count", "expires_at", "is_active", "created_at", "updated_at",
	}).AddRow(1, "LUX10", 10.0, "PERCENT", 1000.0, 100, 5, expiresAt, true, time.Now(), time.Now())
}

// Инкремент должен выполняться одним UPDATE с защитным условием по лимиту,
// а не последовательностью чтение-проверка-запись
func TestIncrementUsage_GuardedUpdate(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE coupons SET used_count = used_count \+ 1, updated_at = NOW\(\) WHERE code = \$1 AND \(max_uses IS NULL OR used_count < max_uses\)`).
		WithArgs("LUX10").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementUsage(context.Background(), "LUX10")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsage_LimitReached(t *testing.T) {
	repo, mock := newMock(t)

	// Ноль затронутых строк, но купон существует - значит, лимит исчерпан
	mock.ExpectExec(`UPDATE coupons SET used_count = used_count \+ 1`).
		WithArgs("LUX10").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM coupons WHERE code = \$1`).
		WithArgs("LUX10").
		WillReturnRows(couponRow())

	err := repo.IncrementUsage(context.Background(), "LUX10")

	assert.ErrorIs(t, err, ErrUsageLimitReached)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsage_CouponNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE coupons SET used_count = used_count \+ 1`).
		WithArgs("NOPE").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM coupons WHERE code = \$1`).
		WithArgs("NOPE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.IncrementUsage(context.Background(), "NOPE")

	assert.ErrorIs(t, err, ErrCouponNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByCode(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .+ FROM coupons WHERE code = \$1`).
		WithArgs("LUX10").
		WillReturnRows(couponRow())

	coupon, err := repo.GetByCode(context.Background(), "LUX10")

	require.NoError(t, err)
	assert.Equal(t, "LUX10", coupon.Code)
	assert.Equal(t, 10.0, coupon.Discount)
	require.NotNil(t, coupon.MaxUses)
	assert.Equal(t, 100, *coupon.MaxUses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM coupons WHERE id = \$1`).
		WithArgs(int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 77)

	assert.ErrorIs(t, err, ErrCouponNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
