package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	getAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/get_availability"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат"
	msgVehicleNotFound  = "автомобиль не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("GET /vehicles/{vehicleId}/availability - Invalid vehicle ID: %s", mux.Vars(r)["vehicleId"])
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	req := &getAvailability.Request{VehicleID: vehicleID}

	query := r.URL.Query()
	if v := query.Get("start"); v != "" {
		start, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /vehicles/{vehicleId}/availability - Invalid start date: %s", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &start
	}
	if v := query.Get("end"); v != "" {
		end, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /vehicles/{vehicleId}/availability - Invalid end date: %s", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &end
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{vehicleId}/availability - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, getAvailability.ErrInvalidRange), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/{vehicleId}/availability - Invalid range: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /vehicles/{vehicleId}/availability - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles/{vehicleId}/availability - Calendar built: vehicle_id=%d, days=%d",
		vehicleID, len(result.Calendar))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
