package get_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/bookings/models"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=&payment_status=&start_date=&end_date=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetBookingsRequest{}

	query := r.URL.Query()
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("payment_status"); v != "" {
		req.PaymentStatus = &v
	}
	if v := query.Get("start_date"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid start date: %s", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}
	if v := query.Get("end_date"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid end date: %s", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}
	if v := query.Get("page"); v != "" {
		req.Page, _ = strconv.Atoi(v)
	}
	if v := query.Get("limit"); v != "" {
		req.Limit, _ = strconv.Atoi(v)
	}

	result, err := h.service.GetWithFilter(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /bookings - Failed to get bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d of %d bookings", len(result.Bookings), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
