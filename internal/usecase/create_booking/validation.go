package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.PickupDate.IsZero() {
		return fmt.Errorf("%w: pickupDate is required", ErrInvalidInput)
	}

	if req.DropoffDate.IsZero() {
		return fmt.Errorf("%w: dropoffDate is required", ErrInvalidInput)
	}

	if req.PickupLocation == "" {
		return fmt.Errorf("%w: pickupLocation is required", ErrInvalidInput)
	}

	if req.DropoffLocation == "" {
		return fmt.Errorf("%w: dropoffLocation is required", ErrInvalidInput)
	}

	if len(req.PickupLocation) > domain.MaxLocationLength || len(req.DropoffLocation) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location exceeds %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	if req.CustomerNotes != nil && len(*req.CustomerNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDates проверяет диапазон дат аренды
func validateDates(pickup, dropoff, now time.Time) error {
	if !dropoff.After(pickup) {
		return fmt.Errorf("%w: dropoffDate must be after pickupDate", ErrInvalidDates)
	}

	// Даты аренды приходят в UTC, поэтому "сегодня" усекается в UTC же -
	// так граница прошедшего дня совпадает с календарем доступности
	nowUTC := now.UTC()
	today := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)
	if pickup.Before(today) {
		return fmt.Errorf("%w: pickupDate is in the past", ErrInvalidDates)
	}

	days := domain.RentalDays(pickup, dropoff)
	if days < domain.MinRentalDays {
		return fmt.Errorf("%w: rental period must be at least %d day", ErrInvalidDates, domain.MinRentalDays)
	}
	if days > domain.MaxRentalDays {
		return fmt.Errorf("%w: rental period cannot exceed %d days", ErrInvalidDates, domain.MaxRentalDays)
	}

	return nil
}
