package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDates       = "некорректный диапазон дат аренды"
	msgVehicleNotFound    = "автомобиль не найден"
	msgVehicleUnavailable = "автомобиль недоступен для бронирования"
	msgAlreadyBooked      = "автомобиль уже забронирован на выбранные даты"
	msgUserNotFound       = "пользователь не найден"
	msgCouponNotFound     = "купон не найден"
	msgCouponExpired      = "срок действия купона истек"
	msgUsageLimitReached  = "лимит использований купона исчерпан"
	msgMinOrderNotMet     = "минимальная сумма заказа для купона: %.2f"
	msgPaymentFailed      = "не удалось создать платеж"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var minOrderErr *coupons.MinOrderError

		switch {
		case errors.Is(err, createBooking.ErrVehicleAlreadyBooked):
			h.logger.Warn("POST /bookings - Vehicle already booked: user_id=%d, vehicle_id=%d", userID, req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrVehicleNotFound):
			h.logger.Warn("POST /bookings - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createBooking.ErrVehicleUnavailable):
			h.logger.Warn("POST /bookings - Vehicle unavailable: vehicle_id=%d", req.VehicleID)
			handlers.RespondError(w, http.StatusConflict, msgVehicleUnavailable)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("POST /bookings - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrCouponExpired):
			h.logger.Warn("POST /bookings - Coupon expired: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCouponExpired)

		case errors.Is(err, coupons.ErrUsageLimitReached):
			h.logger.Warn("POST /bookings - Coupon usage limit reached: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgUsageLimitReached)

		case errors.As(err, &minOrderErr):
			h.logger.Warn("POST /bookings - Coupon min order not met: user_id=%d, min=%.2f", userID, minOrderErr.MinOrder)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgMinOrderNotMet, minOrderErr.MinOrder))

		case errors.Is(err, createBooking.ErrPaymentFailed):
			h.logger.Warn("POST /bookings - Payment failed: user_id=%d, vehicle_id=%d", userID, req.VehicleID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

		case errors.Is(err, createBooking.ErrInvalidDates):
			h.logger.Warn("POST /bookings - Invalid dates: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, vehicle_id=%d, error=%v",
				userID, req.VehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, ref=%s, user_id=%d",
		result.ID, result.BookingRef, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
