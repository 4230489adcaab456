package delete_coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons"
)

const (
	msgInvalidCouponID = "некорректный ID купона"
	msgCouponNotFound  = "купон не найден"
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

// Handle DELETE /api/v1/coupons/{couponId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	couponID, err := strconv.ParseInt(mux.Vars(r)["couponId"], 10, 64)
	if err != nil || couponID <= 0 {
		h.logger.Warn("DELETE /coupons/{couponId} - Invalid coupon ID: %s", mux.Vars(r)["couponId"])
		handlers.RespondBadRequest(w, msgInvalidCouponID)
		return
	}

	if err := h.service.Delete(r.Context(), couponID); err != nil {
		if errors.Is(err, coupons.ErrCouponNotFound) {
			h.logger.Warn("DELETE /coupons/{couponId} - Coupon not found: coupon_id=%d", couponID)
			handlers.RespondNotFound(w, msgCouponNotFound)
			return
		}
		h.logger.Error("DELETE /coupons/{couponId} - Failed: coupon_id=%d, error=%v", couponID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /coupons/{couponId} - Deleted coupon: id=%d", couponID)
	w.WriteHeader(http.StatusNoContent)
}
