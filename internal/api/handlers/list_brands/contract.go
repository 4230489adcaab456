package list_brands

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

type VehiclesService interface {
	ListBrands(ctx context.Context) (*models.BrandListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
