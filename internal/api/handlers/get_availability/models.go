package get_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	getAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VehicleID int64                             `json:"vehicleId"`
	StartDate string                            `json:"startDate"`
	EndDate   string                            `json:"endDate"`
	Available bool                              `json:"available"`
	Calendar  []getAvailability.DayAvailability `json:"calendar"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		VehicleID: resp.VehicleID,
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Available: resp.Available,
		Calendar:  resp.Calendar,
	}
}
