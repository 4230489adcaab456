package validate_coupon

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgCouponNotFound     = "купон не найден"
	msgCouponExpired      = "срок действия купона истек"
	msgUsageLimitReached  = "лимит использований купона исчерпан"
	msgMinOrderNotMet     = "минимальная сумма заказа для купона: %.2f"
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

// Handle POST /api/v1/coupons/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Validate(r.Context(), &req)
	if err != nil {
		var minOrderErr *coupons.MinOrderError

		switch {
		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("POST /coupons/validate - Coupon not found: code=%s", req.Code)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrCouponExpired):
			h.logger.Warn("POST /coupons/validate - Coupon expired: code=%s", req.Code)
			handlers.RespondBadRequest(w, msgCouponExpired)

		case errors.Is(err, coupons.ErrUsageLimitReached):
			h.logger.Warn("POST /coupons/validate - Usage limit reached: code=%s", req.Code)
			handlers.RespondBadRequest(w, msgUsageLimitReached)

		case errors.As(err, &minOrderErr):
			h.logger.Warn("POST /coupons/validate - Min order not met: code=%s, min=%.2f", req.Code, minOrderErr.MinOrder)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgMinOrderNotMet, minOrderErr.MinOrder))

		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: code=%s, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons/validate - Coupon valid: code=%s, discount=%.2f", result.Code, result.DiscountAmount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
