package confirm_payment

import (
	"time"

	confirmPayment "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_payment"
)

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	ID            int64   `json:"id"`
	BookingRef    string  `json:"bookingRef"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	TotalPrice    float64 `json:"totalPrice"`
	LoyaltyPoints int64   `json:"loyaltyPoints"`
	ConfirmedAt   string  `json:"confirmedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		ID:            resp.ID,
		BookingRef:    resp.BookingRef,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		TotalPrice:    resp.TotalPrice,
		LoyaltyPoints: resp.LoyaltyPoints,
		ConfirmedAt:   resp.ConfirmedAt.Format(time.RFC3339),
	}
}
