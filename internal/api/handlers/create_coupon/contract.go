package create_coupon

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

type CouponsService interface {
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
