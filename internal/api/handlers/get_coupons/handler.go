package get_coupons

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
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

// Handle GET /api/v1/coupons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /coupons - Failed to list coupons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /coupons - Returned %d coupons", len(result.Coupons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
