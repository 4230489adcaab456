package update_coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

const (
	msgInvalidCouponID   = "некорректный ID купона"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidInput      = "некорректные данные купона"
	msgCouponNotFound    = "купон не найден"
	msgCodeAlreadyExists = "купон с таким кодом уже существует"
)

type Handler struct {
	service CouponsService
	logger  Logger
}

func NewHandler(service CouponsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/coupons/{couponId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	couponID, err := strconv.ParseInt(mux.Vars(r)["couponId"], 10, 64)
	if err != nil || couponID <= 0 {
		h.logger.Warn("PUT /coupons/{couponId} - Invalid coupon ID: %s", mux.Vars(r)["couponId"])
		handlers.RespondBadRequest(w, msgInvalidCouponID)
		return
	}

	var req models.UpdateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /coupons/{couponId} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.Update(r.Context(), couponID, &req); err != nil {
		switch {
		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("PUT /coupons/{couponId} - Coupon not found: coupon_id=%d", couponID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("PUT /coupons/{couponId} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, coupons.ErrCodeAlreadyExists):
			h.logger.Warn("PUT /coupons/{couponId} - Code already exists: coupon_id=%d", couponID)
			handlers.RespondError(w, http.StatusConflict, msgCodeAlreadyExists)

		default:
			h.logger.Error("PUT /coupons/{couponId} - Failed: coupon_id=%d, error=%v", couponID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /coupons/{couponId} - Updated coupon: id=%d", couponID)
	w.WriteHeader(http.StatusNoContent)
}
