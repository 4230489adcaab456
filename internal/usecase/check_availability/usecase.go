package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// UseCase use case точечной проверки доступности автомобиля
type UseCase struct {
	bookingRepo BookingRepository
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// Execute проверяет, свободен ли автомобиль на диапазон дат
// Границы диапазона учитываются включительно: возврат и выдача
// в один и тот же день считаются конфликтом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: vehicle=%d, pickup=%s, dropoff=%s",
		req.VehicleID, req.PickupDate.Format(domain.DateFormat), req.DropoffDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.VehicleID <= 0 {
		return nil, fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if req.PickupDate.IsZero() || req.DropoffDate.IsZero() {
		return nil, fmt.Errorf("%w: pickupDate and dropoffDate are required", ErrInvalidInput)
	}
	if !req.DropoffDate.After(req.PickupDate) {
		uc.logger.Warn("CheckAvailability: invalid range for vehicle=%d", req.VehicleID)
		return nil, fmt.Errorf("%w: dropoffDate must be after pickupDate", ErrInvalidRange)
	}

	// 2. Проверяем автомобиль
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CheckAvailability: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// Снятый с бронирования автомобиль недоступен независимо от календаря
	if !vehicle.CanBeBooked() {
		uc.logger.Info("CheckAvailability: vehicle id=%d is not bookable", req.VehicleID)
		return &Response{
			VehicleID:   req.VehicleID,
			PickupDate:  req.PickupDate,
			DropoffDate: req.DropoffDate,
			Available:   false,
			Days:        domain.RentalDays(req.PickupDate, req.DropoffDate),
		}, nil
	}

	// 3. Ищем пересекающиеся занимающие бронирования
	occupying, err := uc.bookingRepo.FindOccupying(ctx, req.VehicleID, req.PickupDate, req.DropoffDate, nil)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	available := len(occupying) == 0
	uc.logger.Info("CheckAvailability: vehicle=%d available=%v (%d conflicting bookings)",
		req.VehicleID, available, len(occupying))

	return &Response{
		VehicleID:   req.VehicleID,
		PickupDate:  req.PickupDate,
		DropoffDate: req.DropoffDate,
		Available:   available,
		Days:        domain.RentalDays(req.PickupDate, req.DropoffDate),
	}, nil
}
