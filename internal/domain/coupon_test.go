package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

func TestCouponIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&Coupon{}).IsExpired(now), "без срока действия не истекает")
	assert.False(t, (&Coupon{ExpiresAt: ptr.Ptr(now.Add(time.Hour))}).IsExpired(now))
	assert.True(t, (&Coupon{ExpiresAt: ptr.Ptr(now.Add(-time.Hour))}).IsExpired(now))
	assert.True(t, (&Coupon{ExpiresAt: ptr.Ptr(now)}).IsExpired(now), "граница считается истекшей")
}

func TestCouponUsageLimitReached(t *testing.T) {
	assert.False(t, (&Coupon{UsedCount: 1000}).UsageLimitReached(), "без лимита")
	assert.False(t, (&Coupon{MaxUses: ptr.Ptr(5), UsedCount: 4}).UsageLimitReached())
	assert.True(t, (&Coupon{MaxUses: ptr.Ptr(5), UsedCount: 5}).UsageLimitReached())
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "LUX10", NormalizeCouponCode("  lux10 "))
	assert.Equal(t, "FLAT500", NormalizeCouponCode("Flat500"))
}
