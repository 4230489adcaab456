package get_coupons

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

type CouponsService interface {
	List(ctx context.Context) (*models.CouponListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
