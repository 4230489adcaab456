package vehicles

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// VehicleRepository интерфейс репозитория каталога автомобилей
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehiclesFilter) ([]*domain.Vehicle, error)
	ListBrands(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id int64, upd vehicleRepo.VehicleUpdate) error
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
