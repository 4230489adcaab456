package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePrice(t *testing.T) {
	extraRates := map[string]float64{
		"chauffeur": 500,
		"insurance": 200,
		"gps":       50,
		"baby_seat": 75,
		"wifi":      30,
	}

	t.Run("base price without extras and coupon", func(t *testing.T) {
		breakdown := CalculatePrice(1000, 3, nil, extraRates, nil)

		assert.Equal(t, 3000.0, breakdown.BasePrice)
		assert.Equal(t, 0.0, breakdown.ExtrasPrice)
		assert.Equal(t, 0.0, breakdown.Discount)
		assert.Equal(t, 3000.0, breakdown.TotalPrice)
	})

	t.Run("percent coupon applies to base plus extras", func(t *testing.T) {
		coupon := &Coupon{Code: "LUX10", Type: CouponPercent, Discount: 10}

		breakdown := CalculatePrice(1000, 3, []string{"gps"}, extraRates, coupon)

		assert.Equal(t, 3000.0, breakdown.BasePrice)
		assert.Equal(t, 150.0, breakdown.ExtrasPrice)
		assert.Equal(t, 315.0, breakdown.Discount)
		assert.Equal(t, 2835.0, breakdown.TotalPrice)
	})

	t.Run("fixed coupon is not scaled by days or order size", func(t *testing.T) {
		coupon := &Coupon{Code: "FLAT500", Type: CouponFixed, Discount: 500}

		breakdown := CalculatePrice(1000, 5, nil, extraRates, coupon)

		assert.Equal(t, 500.0, breakdown.Discount)
		assert.Equal(t, 4500.0, breakdown.TotalPrice)
	})

	t.Run("total price is never negative", func(t *testing.T) {
		coupon := &Coupon{Code: "HUGE", Type: CouponFixed, Discount: 100000}

		breakdown := CalculatePrice(1000, 2, nil, extraRates, coupon)

		assert.Equal(t, 0.0, breakdown.TotalPrice)
	})

	t.Run("unknown extra codes are silently ignored", func(t *testing.T) {
		breakdown := CalculatePrice(1000, 2, []string{"gps", "jetpack"}, extraRates, nil)

		assert.Equal(t, 100.0, breakdown.ExtrasPrice)
		assert.Equal(t, 2100.0, breakdown.TotalPrice)
	})

	t.Run("multiple extras are charged per day each", func(t *testing.T) {
		breakdown := CalculatePrice(1000, 3, []string{"chauffeur", "insurance"}, extraRates, nil)

		assert.Equal(t, 2100.0, breakdown.ExtrasPrice)
		assert.Equal(t, 5100.0, breakdown.TotalPrice)
	})

	t.Run("invariant total equals max zero of base plus extras minus discount", func(t *testing.T) {
		cases := []struct {
			rate     float64
			days     int
			discount float64
		}{
			{100, 1, 0},
			{2500, 7, 1000},
			{999.99, 2, 50},
			{10, 1, 9999},
		}

		for _, tc := range cases {
			coupon := &Coupon{Type: CouponFixed, Discount: tc.discount}
			b := CalculatePrice(tc.rate, tc.days, nil, extraRates, coupon)

			expected := b.BasePrice + b.ExtrasPrice - b.Discount
			if expected < 0 {
				expected = 0
			}
			assert.Equal(t, expected, b.TotalPrice)
			assert.GreaterOrEqual(t, b.TotalPrice, 0.0)
		}
	})
}

func TestCouponCalculateDiscount(t *testing.T) {
	t.Run("percent of order amount", func(t *testing.T) {
		coupon := &Coupon{Type: CouponPercent, Discount: 15}
		assert.Equal(t, 300.0, coupon.CalculateDiscount(2000))
	})

	t.Run("fixed amount regardless of order size", func(t *testing.T) {
		coupon := &Coupon{Type: CouponFixed, Discount: 500}
		assert.Equal(t, 500.0, coupon.CalculateDiscount(2000))
		assert.Equal(t, 500.0, coupon.CalculateDiscount(100000))
	})
}
