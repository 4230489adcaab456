package create_coupon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

const (
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidInput      = "некорректные данные купона"
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

// Handle POST /api/v1/coupons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /coupons - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, coupons.ErrCodeAlreadyExists):
			h.logger.Warn("POST /coupons - Code already exists: code=%s", req.Code)
			handlers.RespondError(w, http.StatusConflict, msgCodeAlreadyExists)

		default:
			h.logger.Error("POST /coupons - Failed to create coupon: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons - Created coupon: id=%d, code=%s", result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
