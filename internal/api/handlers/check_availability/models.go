package check_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	VehicleID   int64  `json:"vehicleId"`
	PickupDate  string `json:"pickupDate"`
	DropoffDate string `json:"dropoffDate"`
	Available   bool   `json:"available"`
	Days        int    `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		VehicleID:   resp.VehicleID,
		PickupDate:  resp.PickupDate.Format(domain.DateFormat),
		DropoffDate: resp.DropoffDate.Format(domain.DateFormat),
		Available:   resp.Available,
		Days:        resp.Days,
	}
}
