package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	couponRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type mockCouponRepo struct {
	coupon         *domain.Coupon
	getErr         error
	created        *domain.Coupon
	createErr      error
	incrementErr   error
	incrementCalls int
}

func (m *mockCouponRepo) Create(_ context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	created := *coupon
	created.ID = 1
	m.created = &created
	return &created, nil
}

func (m *mockCouponRepo) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	return m.coupon, m.getErr
}

func (m *mockCouponRepo) List(_ context.Context) ([]*domain.Coupon, error) {
	return nil, nil
}

func (m *mockCouponRepo) Update(_ context.Context, _ int64, _ couponRepo.CouponUpdate) error {
	return nil
}

func (m *mockCouponRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockCouponRepo) IncrementUsage(_ context.Context, _ string) error {
	m.incrementCalls++
	return m.incrementErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeCoupon() *domain.Coupon {
	maxUses := 100
	expiresAt := time.Now().AddDate(0, 1, 0)
	return &domain.Coupon{
		ID:        1,
		Code:      "LUX10",
		Discount:  10,
		Type:      domain.CouponPercent,
		MinOrder:  1000,
		MaxUses:   &maxUses,
		UsedCount: 5,
		ExpiresAt: &expiresAt,
		IsActive:  true,
	}
}

func TestValidate_Success(t *testing.T) {
	svc := NewService(&mockCouponRepo{coupon: activeCoupon()}, nopLogger{})

	resp, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{
		Code:        "  lux10 ",
		OrderAmount: ptr.Ptr(3000.0),
	})

	require.NoError(t, err)
	assert.Equal(t, "LUX10", resp.Code)
	assert.Equal(t, string(domain.CouponPercent), resp.Type)
	assert.Equal(t, 300.0, resp.DiscountAmount)
}

// Проверки купона выполняются в фиксированном порядке: существование,
// срок действия, лимит использований, минимальная сумма заказа.
// Каждый кейс нарушает несколько условий и ожидает ошибку первого по порядку
func TestValidate_CheckOrder(t *testing.T) {
	expired := time.Now().AddDate(0, 0, -1)
	exhausted := 5

	t.Run("deactivated wins over expiry", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.IsActive = false
		coupon.ExpiresAt = &expired
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(3000.0)})
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("expiry wins over usage limit", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.ExpiresAt = &expired
		coupon.MaxUses = &exhausted
		coupon.UsedCount = 5
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(3000.0)})
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("usage limit wins over min order", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.MaxUses = &exhausted
		coupon.UsedCount = 5
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(100.0)})
		assert.ErrorIs(t, err, ErrUsageLimitReached)
	})

	t.Run("min order checked last", func(t *testing.T) {
		svc := NewService(&mockCouponRepo{coupon: activeCoupon()}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(100.0)})
		assert.ErrorIs(t, err, ErrMinOrderNotMet)

		var minOrderErr *MinOrderError
		require.ErrorAs(t, err, &minOrderErr)
		assert.Equal(t, 1000.0, minOrderErr.MinOrder)
	})
}

// Без суммы заказа минимальная сумма не проверяется -
// клиент узнает о применимости купона до оформления корзины
func TestValidate_OmittedOrderAmount(t *testing.T) {
	t.Run("min order skipped for percent coupon", func(t *testing.T) {
		svc := NewService(&mockCouponRepo{coupon: activeCoupon()}, nopLogger{})

		resp, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10"})

		require.NoError(t, err)
		assert.Equal(t, "LUX10", resp.Code)
		assert.Equal(t, 0.0, resp.DiscountAmount)
	})

	t.Run("fixed coupon reports full discount", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.Code = "VIP"
		coupon.Type = domain.CouponFixed
		coupon.Discount = 500
		coupon.MinOrder = 3000
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		resp, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "VIP"})

		require.NoError(t, err)
		assert.Equal(t, 500.0, resp.DiscountAmount)
	})
}

func TestValidate_UnknownCoupon(t *testing.T) {
	svc := NewService(&mockCouponRepo{getErr: couponRepo.ErrCouponNotFound}, nopLogger{})

	_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "NOPE", OrderAmount: ptr.Ptr(3000.0)})
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidate_BoundaryConditions(t *testing.T) {
	t.Run("order amount equal to min order passes", func(t *testing.T) {
		svc := NewService(&mockCouponRepo{coupon: activeCoupon()}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(1000.0)})
		assert.NoError(t, err)
	})

	t.Run("coupon expiring exactly now is expired", func(t *testing.T) {
		coupon := activeCoupon()
		now := time.Now().Add(-time.Millisecond)
		coupon.ExpiresAt = &now
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(3000.0)})
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("unlimited coupon ignores used count", func(t *testing.T) {
		coupon := activeCoupon()
		coupon.MaxUses = nil
		coupon.UsedCount = 100500
		svc := NewService(&mockCouponRepo{coupon: coupon}, nopLogger{})

		_, err := svc.Validate(context.Background(), &models.ValidateCouponRequest{Code: "LUX10", OrderAmount: ptr.Ptr(3000.0)})
		assert.NoError(t, err)
	})
}

func TestRedeemUsage(t *testing.T) {
	t.Run("maps repository errors", func(t *testing.T) {
		svc := NewService(&mockCouponRepo{incrementErr: couponRepo.ErrUsageLimitReached}, nopLogger{})
		assert.ErrorIs(t, svc.RedeemUsage(context.Background(), "LUX10"), ErrUsageLimitReached)

		svc = NewService(&mockCouponRepo{incrementErr: couponRepo.ErrCouponNotFound}, nopLogger{})
		assert.ErrorIs(t, svc.RedeemUsage(context.Background(), "LUX10"), ErrCouponNotFound)
	})

	t.Run("normalizes code before increment", func(t *testing.T) {
		repo := &mockCouponRepo{}
		svc := NewService(repo, nopLogger{})

		require.NoError(t, svc.RedeemUsage(context.Background(), " lux10 "))
		assert.Equal(t, 1, repo.incrementCalls)
	})
}

func TestCreateCoupon_Validation(t *testing.T) {
	svc := NewService(&mockCouponRepo{}, nopLogger{})

	cases := []struct {
		name string
		req  *models.CreateCouponRequest
	}{
		{"empty code", &models.CreateCouponRequest{Code: "  ", Type: "PERCENT", Discount: 10}},
		{"unknown type", &models.CreateCouponRequest{Code: "X", Type: "BOGO", Discount: 10}},
		{"zero discount", &models.CreateCouponRequest{Code: "X", Type: "FIXED", Discount: 0}},
		{"percent above 100", &models.CreateCouponRequest{Code: "X", Type: "PERCENT", Discount: 150}},
		{"negative min order", &models.CreateCouponRequest{Code: "X", Type: "FIXED", Discount: 10, MinOrder: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateCoupon_NormalizesCode(t *testing.T) {
	repo := &mockCouponRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Code:     " lux10 ",
		Type:     "PERCENT",
		Discount: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "LUX10", resp.Code)
}

func TestCreateCoupon_DuplicateCode(t *testing.T) {
	svc := NewService(&mockCouponRepo{createErr: couponRepo.ErrCodeAlreadyExists}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		Code:     "LUX10",
		Type:     "PERCENT",
		Discount: 10,
	})

	assert.ErrorIs(t, err, ErrCodeAlreadyExists)
}
