package domain

import (
	"strings"
	"time"
)

// CouponType вид скидки купона
type CouponType string

const (
	CouponPercent CouponType = "PERCENT" // Скидка в процентах от суммы заказа
	CouponFixed   CouponType = "FIXED"   // Фиксированная сумма, не зависит от размера заказа
)

// Coupon represents a discount coupon
type Coupon struct {
	ID        int64
	Code      string // Всегда в верхнем регистре
	Discount  float64
	Type      CouponType
	MinOrder  float64
	MaxUses   *int // nil = без ограничения
	UsedCount int
	ExpiresAt *time.Time // nil = бессрочный
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired returns true if the coupon has an expiry in the past
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// UsageLimitReached returns true if the usage cap is set and exhausted
func (c *Coupon) UsageLimitReached() bool {
	return c.MaxUses != nil && c.UsedCount >= *c.MaxUses
}

// CalculateDiscount вычисляет скидку для указанной суммы заказа
// PERCENT: orderAmount × discount / 100; FIXED: фиксированная сумма
func (c *Coupon) CalculateDiscount(orderAmount float64) float64 {
	if c.Type == CouponPercent {
		return orderAmount * c.Discount / 100
	}
	return c.Discount
}

// NormalizeCouponCode приводит код купона к каноническому виду
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
