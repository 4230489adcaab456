package update_coupon

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

type CouponsService interface {
	Update(ctx context.Context, id int64, req *models.UpdateCouponRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
