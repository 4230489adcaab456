package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	paymentsClient PaymentsClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentsClient PaymentsClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		paymentsClient: paymentsClient,
		logger:         logger,
	}
}

// Execute выполняет use case отмены бронирования
// Для оплаченного бронирования сначала выполняется возврат средств,
// отмена фиксируется только после успешного возврата. Неоплаченное
// платежное намерение отменяется best-effort
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d, admin=%v", req.BookingID, req.UserID, req.IsAdmin)

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа
	if booking.UserID != req.UserID && !req.IsAdmin {
		uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем состояние бронирования
	if booking.IsCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s", req.BookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// 4. Разбираемся с платежом
	refunded := false
	finalPaymentStatus := booking.PaymentStatus

	switch {
	case booking.IsPaid():
		// Оплаченное бронирование: возврат обязателен, при неудаче отмена не выполняется
		if booking.PaymentIntentID == nil {
			uc.logger.Error("CancelBooking: paid booking id=%d has no payment intent", req.BookingID)
			return nil, fmt.Errorf("%w: paid booking has no payment intent", ErrInternal)
		}

		refund, err := uc.paymentsClient.Refund(ctx, *booking.PaymentIntentID)
		if err != nil {
			uc.logger.Error("CancelBooking: refund failed for booking id=%d intent=%s: %v",
				req.BookingID, *booking.PaymentIntentID, err)
			return nil, fmt.Errorf("%w: %v", ErrRefundFailed, err)
		}

		uc.logger.Info("CancelBooking: refunded %d for booking id=%d, refund_id=%s",
			refund.Amount, req.BookingID, refund.ID)
		refunded = true
		finalPaymentStatus = domain.PaymentRefunded

	case booking.PaymentIntentID != nil:
		// Неоплаченное намерение отменяем, чтобы клиент не завершил оплату отмененной брони
		// Неудача не блокирует отмену - подтверждение все равно отклонит отмененную бронь
		if err := uc.paymentsClient.CancelIntent(ctx, *booking.PaymentIntentID); err != nil {
			if !errors.Is(err, payments.ErrIntentNotFound) {
				uc.logger.Warn("CancelBooking: failed to cancel intent %s for booking id=%d: %v",
					*booking.PaymentIntentID, req.BookingID, err)
			}
		}
	}

	// 5. Фиксируем отмену
	// UPDATE условный: конкурирующая отмена или смена статуса после проверок
	// выше затронет ноль строк и не приведет к повторной фиксации
	if err := uc.bookingRepo.Cancel(ctx, req.BookingID, finalPaymentStatus); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStateConflict):
			uc.logger.Warn("CancelBooking: booking id=%d left cancellable state concurrently", req.BookingID)
			return nil, ErrAlreadyCancelled
		default:
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, refunded=%v", req.BookingID, refunded)

	return &Response{
		ID:            booking.ID,
		BookingRef:    booking.BookingRef,
		Status:        string(domain.StatusCancelled),
		PaymentStatus: string(finalPaymentStatus),
		Refunded:      refunded,
		CancelledAt:   time.Now(),
	}, nil
}
