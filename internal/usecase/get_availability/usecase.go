package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// defaultWindowDays окно календаря по умолчанию
const defaultWindowDays = 90

// maxWindowDays предельный размер запрашиваемого окна
const maxWindowDays = 366

// UseCase use case для получения календаря доступности автомобиля
type UseCase struct {
	bookingRepo  BookingRepository
	vehicleRepo  VehicleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения календаря доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: vehicle=%d", req.VehicleID)

	// 1. Валидация входных данных
	if req.VehicleID <= 0 {
		return nil, fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	// 2. Определяем окно календаря
	// Окно по умолчанию начинается с "сегодня" в UTC - в той же зоне,
	// в которой разбираются даты запросов
	now := uc.timeProvider.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	start := today
	if req.StartDate != nil {
		start = *req.StartDate
	}

	end := start.AddDate(0, 0, defaultWindowDays-1)
	if req.EndDate != nil {
		end = *req.EndDate
	}

	if end.Before(start) {
		uc.logger.Warn("GetAvailability: inverted range %s - %s for vehicle=%d",
			start.Format(domain.DateFormat), end.Format(domain.DateFormat), req.VehicleID)
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidRange)
	}

	if end.Sub(start) > maxWindowDays*24*time.Hour {
		uc.logger.Warn("GetAvailability: window too large for vehicle=%d", req.VehicleID)
		return nil, fmt.Errorf("%w: window exceeds %d days", ErrInvalidRange, maxWindowDays)
	}

	// 3. Проверяем автомобиль
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("GetAvailability: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("GetAvailability: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if !vehicle.IsActive {
		uc.logger.Warn("GetAvailability: vehicle id=%d is deactivated", req.VehicleID)
		return nil, ErrVehicleNotFound
	}

	// 4. Получаем занимающие бронирования в окне
	occupying, err := uc.bookingRepo.FindOccupying(ctx, req.VehicleID, start, end, nil)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Строим календарь по дням
	calendar := domain.BuildCalendar(start, end, occupying)

	days := make([]DayAvailability, 0, len(calendar))
	allAvailable := true
	for _, day := range calendar {
		if !day.Available {
			allAvailable = false
		}
		days = append(days, DayAvailability{
			Date:      day.Date.Format(domain.DateFormat),
			Available: day.Available,
		})
	}

	uc.logger.Info("GetAvailability: vehicle=%d, window=%s - %s, occupied bookings=%d",
		req.VehicleID, start.Format(domain.DateFormat), end.Format(domain.DateFormat), len(occupying))

	return &Response{
		VehicleID: req.VehicleID,
		StartDate: start,
		EndDate:   end,
		Available: allAvailable,
		Calendar:  days,
	}, nil
}
