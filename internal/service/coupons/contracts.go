package coupons

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	couponRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/coupon"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]*domain.Coupon, error)
	Update(ctx context.Context, id int64, upd couponRepo.CouponUpdate) error
	Delete(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, code string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
