package get_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
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

// Handle GET /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("GET /vehicles/{vehicleId} - Invalid vehicle ID: %s", mux.Vars(r)["vehicleId"])
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	result, err := h.service.GetByID(r.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			h.logger.Warn("GET /vehicles/{vehicleId} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)
			return
		}
		h.logger.Error("GET /vehicles/{vehicleId} - Failed to get vehicle: vehicle_id=%d, error=%v", vehicleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /vehicles/{vehicleId} - Vehicle fetched: vehicle_id=%d", vehicleID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
