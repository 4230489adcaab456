package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-RentalService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID            int64  `json:"id"`
	BookingRef    string `json:"bookingRef"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Refunded      bool   `json:"refunded"`
	CancelledAt   string `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:            resp.ID,
		BookingRef:    resp.BookingRef,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		Refunded:      resp.Refunded,
		CancelledAt:   resp.CancelledAt.Format(time.RFC3339),
	}
}
