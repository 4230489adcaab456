package update_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidInput     = "некорректные данные автомобиля"
	msgVehicleNotFound  = "автомобиль не найден"
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

// Handle PUT /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("PUT /vehicles/{vehicleId} - Invalid vehicle ID: %s", mux.Vars(r)["vehicleId"])
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	var req models.UpdateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vehicles/{vehicleId} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.Update(r.Context(), vehicleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrVehicleNotFound):
			h.logger.Warn("PUT /vehicles/{vehicleId} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, vehicles.ErrInvalidInput):
			h.logger.Warn("PUT /vehicles/{vehicleId} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /vehicles/{vehicleId} - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vehicles/{vehicleId} - Updated vehicle: id=%d", vehicleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
