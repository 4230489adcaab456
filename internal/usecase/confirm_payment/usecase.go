package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
)

// paymentIntentSucceeded статус успешно завершенного платежа в Stripe
const paymentIntentSucceeded = "succeeded"

// UseCase use case для подтверждения оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	vehicleRepo  VehicleRepository
	userRepo     UserRepository
	payments     PaymentsClient
	mailerClient MailerClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vehicleRepo VehicleRepository,
	userRepo UserRepository,
	payments PaymentsClient,
	mailerClient MailerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		payments:     payments,
		mailerClient: mailerClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения оплаты
// Сверяет состояние платежа в Stripe, затем в одной транзакции
// переводит бронирование в CONFIRMED/PAID и начисляет баллы лояльности.
// Почтовые уведомления отправляются асинхронно и не влияют на результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, user=%d", req.BookingID, req.UserID)

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа
	if booking.UserID != req.UserID {
		uc.logger.Warn("ConfirmPayment: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем состояние бронирования
	if booking.IsPaid() {
		uc.logger.Warn("ConfirmPayment: booking id=%d already confirmed", req.BookingID)
		return nil, ErrAlreadyConfirmed
	}
	if !booking.CanConfirmPayment() {
		uc.logger.Warn("ConfirmPayment: booking id=%d not awaiting payment, status=%s payment=%s",
			req.BookingID, booking.Status, booking.PaymentStatus)
		return nil, ErrNotAwaitingPayment
	}

	// 4. Сверяем платеж в Stripe
	// Бесплатные бронирования (итог 0 после купона) платежа не имеют
	if booking.TotalPrice > 0 {
		if booking.PaymentIntentID == nil {
			uc.logger.Error("ConfirmPayment: booking id=%d has no payment intent", req.BookingID)
			return nil, ErrNoPaymentIntent
		}

		intent, err := uc.payments.GetIntent(ctx, *booking.PaymentIntentID)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to get intent %s: %v", *booking.PaymentIntentID, err)
			return nil, fmt.Errorf("%w: failed to get payment intent: %v", ErrInternal, err)
		}

		if intent.Status != paymentIntentSucceeded {
			uc.logger.Warn("ConfirmPayment: intent %s not succeeded, status=%s",
				*booking.PaymentIntentID, intent.Status)
			return nil, ErrPaymentNotSucceeded
		}
	}

	loyaltyPoints := booking.LoyaltyPoints()

	// 5. Подтверждаем бронирование и начисляем баллы атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.ConfirmPayment(txCtx, req.BookingID); err != nil {
			// Условный UPDATE не прошел: бронирование подтверждено или отменено
			// конкурентно после проверок выше. Баллы начисляются только победителю
			if errors.Is(err, bookingRepo.ErrStateConflict) {
				uc.logger.Warn("ConfirmPayment: booking id=%d left PENDING state concurrently", req.BookingID)
				return ErrAlreadyConfirmed
			}
			uc.logger.Error("ConfirmPayment: failed to confirm booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		if loyaltyPoints > 0 {
			if err := uc.userRepo.AddLoyaltyPoints(txCtx, booking.UserID, loyaltyPoints); err != nil {
				uc.logger.Error("ConfirmPayment: failed to add loyalty points for user=%d: %v", booking.UserID, err)
				return fmt.Errorf("%w: failed to add loyalty points: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: booking id=%d confirmed, %d loyalty points added",
		req.BookingID, loyaltyPoints)

	// 6. Уведомления по почте - асинхронно, с собственным таймаутом
	go uc.sendNotifications(booking, loyaltyPoints)

	return &Response{
		ID:            booking.ID,
		BookingRef:    booking.BookingRef,
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: string(domain.PaymentPaid),
		TotalPrice:    booking.TotalPrice,
		LoyaltyPoints: loyaltyPoints,
		ConfirmedAt:   time.Now(),
	}, nil
}

// sendNotifications отправляет письма клиенту и администратору
// Ошибки отправки только логируются
func (uc *UseCase) sendNotifications(booking *domain.Booking, loyaltyPoints int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := uc.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to get user=%d for notification: %v", booking.UserID, err)
		return
	}

	vehicleName := fmt.Sprintf("#%d", booking.VehicleID)
	if vehicle, err := uc.vehicleRepo.GetByID(ctx, booking.VehicleID); err == nil {
		vehicleName = fmt.Sprintf("%s %s", vehicle.Brand, vehicle.Name)
	} else {
		uc.logger.Warn("ConfirmPayment: failed to get vehicle=%d for notification: %v", booking.VehicleID, err)
	}

	data := mailer.BookingEmail{
		RecipientEmail:  user.Email,
		RecipientName:   user.Name,
		BookingRef:      booking.BookingRef,
		VehicleName:     vehicleName,
		PickupDate:      booking.PickupDate,
		DropoffDate:     booking.DropoffDate,
		PickupLocation:  booking.PickupLocation,
		DropoffLocation: booking.DropoffLocation,
		TotalPrice:      booking.TotalPrice,
		LoyaltyPoints:   loyaltyPoints,
	}

	if err := uc.mailerClient.SendBookingConfirmation(data); err != nil {
		uc.logger.Error("ConfirmPayment: failed to send confirmation email for %s: %v", booking.BookingRef, err)
	}

	if err := uc.mailerClient.SendAdminNewBooking(data); err != nil {
		uc.logger.Error("ConfirmPayment: failed to send admin email for %s: %v", booking.BookingRef, err)
	}
}
