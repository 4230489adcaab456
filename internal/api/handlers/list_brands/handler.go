package list_brands

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

type Handler struct {
	service VehiclesService
	logger  Logger
}

func NewHandler(service VehiclesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/brands
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListBrands(r.Context())
	if err != nil {
		h.logger.Error("GET /vehicles/brands - Failed to list brands: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vehicles/brands - Returned %d brands", len(result.Brands))
	handlers.RespondJSON(w, http.StatusOK, result)
}
