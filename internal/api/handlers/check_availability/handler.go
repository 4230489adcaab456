package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "некорректный диапазон дат аренды"
	msgVehicleNotFound  = "автомобиль не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{vehicleId}/check-availability?pickup_date=...&dropoff_date=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(mux.Vars(r)["vehicleId"], 10, 64)
	if err != nil || vehicleID <= 0 {
		h.logger.Warn("GET /vehicles/{vehicleId}/check-availability - Invalid vehicle ID: %s", mux.Vars(r)["vehicleId"])
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	query := r.URL.Query()

	pickup, err := time.Parse(domain.DateFormat, query.Get("pickup_date"))
	if err != nil {
		h.logger.Warn("GET /vehicles/{vehicleId}/check-availability - Invalid pickup date: %s", query.Get("pickup_date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	dropoff, err := time.Parse(domain.DateFormat, query.Get("dropoff_date"))
	if err != nil {
		h.logger.Warn("GET /vehicles/{vehicleId}/check-availability - Invalid dropoff date: %s", query.Get("dropoff_date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		VehicleID:   vehicleID,
		PickupDate:  pickup,
		DropoffDate: dropoff,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{vehicleId}/check-availability - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidRange), errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/{vehicleId}/check-availability - Invalid range: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /vehicles/{vehicleId}/check-availability - Failed: vehicle_id=%d, error=%v", vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles/{vehicleId}/check-availability - vehicle_id=%d available=%v",
		vehicleID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
