package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	vehicleRepo    VehicleRepository
	userRepo       UserRepository
	couponService  CouponService
	paymentsClient PaymentsClient
	txManager      TransactionManager
	extraRates     map[string]float64
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	userRepo UserRepository,
	couponService CouponService,
	paymentsClient PaymentsClient,
	txManager TransactionManager,
	extraRates map[string]float64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		couponService:  couponService,
		paymentsClient: paymentsClient,
		txManager:      txManager,
		extraRates:     extraRates,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Платеж авторизуется до транзакции, запись бронирования и списание
// купона выполняются в сериализуемой транзакции с повторной проверкой
// доступности. Если транзакция не прошла, платеж отменяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, vehicle=%d, pickup=%s, dropoff=%s",
		req.UserID, req.VehicleID, req.PickupDate.Format(domain.DateFormat), req.DropoffDate.Format(domain.DateFormat))

	// Место возврата по умолчанию совпадает с местом получения
	if req.DropoffLocation == "" {
		req.DropoffLocation = req.PickupLocation
	}

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация диапазона дат
	now := uc.timeProvider.Now()
	if err := validateDates(req.PickupDate, req.DropoffDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	days := domain.RentalDays(req.PickupDate, req.DropoffDate)

	// 3. Проверяем пользователя
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 4. Проверяем автомобиль
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateBooking: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if !vehicle.CanBeBooked() {
		uc.logger.Warn("CreateBooking: vehicle id=%d is not bookable", req.VehicleID)
		return nil, ErrVehicleUnavailable
	}

	// 5. Предварительная проверка доступности дат
	// Окончательная проверка выполняется внутри транзакции с блокировкой,
	// здесь отсекаем заведомо конфликтующие запросы до создания платежа
	occupying, err := uc.bookingRepo.FindOccupying(ctx, req.VehicleID, req.PickupDate, req.DropoffDate, nil)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check availability: %v", err)
		return nil, fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
	}
	if len(occupying) > 0 {
		uc.logger.Warn("CreateBooking: vehicle id=%d already booked for requested dates", req.VehicleID)
		return nil, ErrVehicleAlreadyBooked
	}

	// 6. Проверяем купон против суммы заказа до скидки
	subtotal := vehicle.PricePerDay * float64(days)
	for _, code := range req.Extras {
		if rate, ok := uc.extraRates[code]; ok {
			subtotal += rate * float64(days)
		}
	}

	var coupon *domain.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		coupon, err = uc.couponService.GetApplicable(ctx, *req.CouponCode, subtotal)
		if err != nil {
			uc.logger.Warn("CreateBooking: coupon %s rejected: %v", *req.CouponCode, err)
			return nil, err
		}
	}

	// 7. Фиксируем расшифровку стоимости
	price := domain.CalculatePrice(vehicle.PricePerDay, days, req.Extras, uc.extraRates, coupon)

	// 8. Генерируем код бронирования и авторизуем платеж
	bookingRef := generateBookingRef(now)

	var intent *payments.PaymentIntent
	if price.TotalPrice > 0 {
		intent, err = uc.paymentsClient.CreateIntent(ctx, price.TotalPrice, bookingRef, req.UserID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create payment intent for %s: %v", bookingRef, err)
			if errors.Is(err, payments.ErrPaymentFailed) {
				return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
			}
			return nil, fmt.Errorf("%w: failed to create payment intent: %v", ErrInternal, err)
		}
	}

	booking := &domain.Booking{
		BookingRef:      bookingRef,
		UserID:          user.ID,
		VehicleID:       vehicle.ID,
		PickupDate:      req.PickupDate,
		DropoffDate:     req.DropoffDate,
		Days:            days,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Extras:          req.Extras,
		BasePrice:       price.BasePrice,
		ExtrasPrice:     price.ExtrasPrice,
		Discount:        price.Discount,
		TotalPrice:      price.TotalPrice,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		CustomerNotes:   req.CustomerNotes,
	}
	if coupon != nil {
		booking.CouponCode = &coupon.Code
	}
	if intent != nil {
		booking.PaymentIntentID = &intent.ID
	}

	// 9. Выполняем операции с БД в сериализуемой транзакции
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Повторная проверка доступности с блокировкой (FOR UPDATE)
		occupying, err := uc.bookingRepo.FindOccupying(txCtx, req.VehicleID, req.PickupDate, req.DropoffDate, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to re-check availability: %v", err)
			return fmt.Errorf("%w: failed to re-check availability: %v", ErrInternal, err)
		}
		if len(occupying) > 0 {
			uc.logger.Warn("CreateBooking: vehicle id=%d booked concurrently", req.VehicleID)
			return ErrVehicleAlreadyBooked
		}

		// 9.2. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 9.3. Списываем использование купона с защитой от превышения лимита
		if coupon != nil {
			if err := uc.couponService.RedeemUsage(txCtx, coupon.Code); err != nil {
				uc.logger.Warn("CreateBooking: failed to redeem coupon %s: %v", coupon.Code, err)
				return err
			}
		}

		result = created
		return nil
	})

	if err != nil {
		// Компенсация: бронь не записана, авторизованный платеж отменяем
		if intent != nil {
			if cancelErr := uc.paymentsClient.CancelIntent(ctx, intent.ID); cancelErr != nil {
				uc.logger.Error("CreateBooking: failed to cancel payment intent %s after rollback: %v",
					intent.ID, cancelErr)
			}
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s total=%.2f",
		result.ID, result.BookingRef, result.TotalPrice)

	resp := &Response{
		ID:              result.ID,
		BookingRef:      result.BookingRef,
		UserID:          result.UserID,
		VehicleID:       result.VehicleID,
		PickupDate:      result.PickupDate,
		DropoffDate:     result.DropoffDate,
		Days:            result.Days,
		PickupLocation:  result.PickupLocation,
		DropoffLocation: result.DropoffLocation,
		Extras:          result.Extras,
		CouponCode:      result.CouponCode,
		BasePrice:       result.BasePrice,
		ExtrasPrice:     result.ExtrasPrice,
		Discount:        result.Discount,
		TotalPrice:      result.TotalPrice,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		CreatedAt:       result.CreatedAt,
	}
	if intent != nil {
		resp.PaymentClientSecret = &intent.ClientSecret
	}

	return resp, nil
}
