package delete_vehicle

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

// Handle DELETE /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("DELETE /vehicles/{vehicleId} - Invalid vehicle ID: %s", mux.Vars(r)["vehicleId"])
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	if err := h.service.Delete(r.Context(), vehicleID); err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			h.logger.Warn("DELETE /vehicles/{vehicleId} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)
			return
		}
		h.logger.Error("DELETE /vehicles/{vehicleId} - Failed: vehicle_id=%d, error=%v", vehicleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /vehicles/{vehicleId} - Deactivated vehicle: id=%d", vehicleID)
	w.WriteHeader(http.StatusNoContent)
}
