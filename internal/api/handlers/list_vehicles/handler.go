package list_vehicles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

const (
	msgInvalidPrice = "некорректное значение фильтра цены"
	msgInvalidInput = "некорректные параметры запроса"
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

// Handle GET /api/v1/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /vehicles - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPrice)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, vehicles.ErrInvalidInput) {
			h.logger.Warn("GET /vehicles - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /vehicles - Failed to list vehicles: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vehicles - Returned %d vehicles", len(result.Vehicles))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery извлекает фильтры каталога из query-параметров
func parseQuery(r *http.Request) (*models.ListVehiclesRequest, error) {
	query := r.URL.Query()
	req := &models.ListVehiclesRequest{}

	if v := query.Get("category"); v != "" {
		req.Category = &v
	}
	if v := query.Get("brand"); v != "" {
		req.Brand = &v
	}
	if v := query.Get("search"); v != "" {
		req.Search = &v
	}
	if v := query.Get("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		req.MinPrice = &price
	}
	if v := query.Get("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		req.MaxPrice = &price
	}
	if v := query.Get("available"); v != "" {
		req.OnlyAvailable = v == "true"
	}

	return req, nil
}
