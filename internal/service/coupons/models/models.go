package models

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	couponRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/coupon"
)

// Request модели

// ValidateCouponRequest запрос на проверку купона
// Сумма заказа опциональна: без нее купон проверяется
// без учета минимальной суммы
type ValidateCouponRequest struct {
	Code        string   `json:"code"`
	OrderAmount *float64 `json:"orderAmount,omitempty"`
}

// CreateCouponRequest запрос на создание купона
type CreateCouponRequest struct {
	Code      string     `json:"code"`
	Discount  float64    `json:"discount"`
	Type      string     `json:"type"`
	MinOrder  float64    `json:"minOrder"`
	MaxUses   *int       `json:"maxUses,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ToDomain конвертирует request в domain модель
// Код купона нормализуется до канонического вида
func (r *CreateCouponRequest) ToDomain() *domain.Coupon {
	return &domain.Coupon{
		Code:      domain.NormalizeCouponCode(r.Code),
		Discount:  r.Discount,
		Type:      domain.CouponType(r.Type),
		MinOrder:  r.MinOrder,
		MaxUses:   r.MaxUses,
		ExpiresAt: r.ExpiresAt,
	}
}

// UpdateCouponRequest запрос на обновление купона, nil = без изменения
type UpdateCouponRequest struct {
	Code      *string    `json:"code,omitempty"`
	Discount  *float64   `json:"discount,omitempty"`
	Type      *string    `json:"type,omitempty"`
	MinOrder  *float64   `json:"minOrder,omitempty"`
	MaxUses   *int       `json:"maxUses,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
}

// ToRepoUpdate конвертирует request в структуру обновления репозитория
func (r *UpdateCouponRequest) ToRepoUpdate() couponRepo.CouponUpdate {
	upd := couponRepo.CouponUpdate{
		Discount: r.Discount,
		MinOrder: r.MinOrder,
		MaxUses:  r.MaxUses,
		IsActive: r.IsActive,
	}

	if r.Code != nil {
		code := domain.NormalizeCouponCode(*r.Code)
		upd.Code = &code
	}
	if r.Type != nil {
		couponType := domain.CouponType(*r.Type)
		upd.Type = &couponType
	}
	if r.ExpiresAt != nil {
		upd.ExpiresAt = &sql.NullTime{Time: *r.ExpiresAt, Valid: true}
	}

	return upd
}

// Response модели

// ValidateCouponResponse результат проверки купона
type ValidateCouponResponse struct {
	Code           string  `json:"code"`
	Type           string  `json:"type"`
	Discount       float64 `json:"discount"`
	DiscountAmount float64 `json:"discountAmount"`
}

// CouponResponse ответ с данными купона (админ)
type CouponResponse struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Discount  float64    `json:"discount"`
	Type      string     `json:"type"`
	MinOrder  float64    `json:"minOrder"`
	MaxUses   *int       `json:"maxUses,omitempty"`
	UsedCount int        `json:"usedCount"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CouponListResponse ответ со списком купонов (админ)
type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

// Методы конвертации

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}

	return &CouponResponse{
		ID:        c.ID,
		Code:      c.Code,
		Discount:  c.Discount,
		Type:      string(c.Type),
		MinOrder:  c.MinOrder,
		MaxUses:   c.MaxUses,
		UsedCount: c.UsedCount,
		ExpiresAt: c.ExpiresAt,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainCouponList конвертирует список domain моделей в DTO
func FromDomainCouponList(coupons []*domain.Coupon) *CouponListResponse {
	resp := &CouponListResponse{
		Coupons: make([]CouponResponse, 0, len(coupons)),
	}

	for _, c := range coupons {
		if couponResp := FromDomainCoupon(c); couponResp != nil {
			resp.Coupons = append(resp.Coupons, *couponResp)
		}
	}

	return resp
}

// ValidCouponType проверяет, что тип купона известен
func ValidCouponType(couponType string) bool {
	t := domain.CouponType(couponType)
	return t == domain.CouponPercent || t == domain.CouponFixed
}
