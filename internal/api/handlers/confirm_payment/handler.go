package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	confirmPayment "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgBookingNotFound     = "бронирование не найдено"
	msgAccessDenied        = "доступ к бронированию запрещен"
	msgAlreadyConfirmed    = "оплата бронирования уже подтверждена"
	msgNotAwaitingPayment  = "бронирование не ожидает оплаты"
	msgPaymentNotSucceeded = "платеж не завершен"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Invalid booking ID: %s", mux.Vars(r)["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		BookingID: bookingID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, confirmPayment.ErrAlreadyConfirmed):
			h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Already confirmed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyConfirmed)

		case errors.Is(err, confirmPayment.ErrNotAwaitingPayment), errors.Is(err, confirmPayment.ErrNoPaymentIntent):
			h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Not awaiting payment: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotAwaitingPayment)

		case errors.Is(err, confirmPayment.ErrPaymentNotSucceeded):
			h.logger.Warn("POST /bookings/{bookingId}/confirm-payment - Payment not succeeded: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotSucceeded)

		default:
			h.logger.Error("POST /bookings/{bookingId}/confirm-payment - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{bookingId}/confirm-payment - Confirmed: booking_id=%d, loyalty=%d",
		bookingID, result.LoyaltyPoints)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
