package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VehicleID       int64    `json:"vehicleId"`
	PickupDate      string   `json:"pickupDate"`  // "2026-06-01"
	DropoffDate     string   `json:"dropoffDate"` // "2026-06-04"
	PickupLocation  string   `json:"pickupLocation"`
	DropoffLocation string   `json:"dropoffLocation,omitempty"`
	Extras          []string `json:"extras,omitempty"`
	CouponCode      *string  `json:"couponCode,omitempty"`
	CustomerNotes   *string  `json:"customerNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64    `json:"id"`
	BookingRef      string   `json:"bookingRef"`
	UserID          int64    `json:"userId"`
	VehicleID       int64    `json:"vehicleId"`
	PickupDate      string   `json:"pickupDate"`
	DropoffDate     string   `json:"dropoffDate"`
	Days            int      `json:"days"`
	PickupLocation  string   `json:"pickupLocation"`
	DropoffLocation string   `json:"dropoffLocation"`
	Extras          []string `json:"extras"`
	CouponCode      *string  `json:"couponCode,omitempty"`

	BasePrice   float64 `json:"basePrice"`
	ExtrasPrice float64 `json:"extrasPrice"`
	Discount    float64 `json:"discount"`
	TotalPrice  float64 `json:"totalPrice"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	PaymentClientSecret *string `json:"paymentClientSecret,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	pickupDate, err := time.Parse(domain.DateFormat, r.PickupDate)
	if err != nil {
		return nil, err
	}

	dropoffDate, err := time.Parse(domain.DateFormat, r.DropoffDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		VehicleID:       r.VehicleID,
		PickupDate:      pickupDate,
		DropoffDate:     dropoffDate,
		PickupLocation:  r.PickupLocation,
		DropoffLocation: r.DropoffLocation,
		Extras:          r.Extras,
		CouponCode:      r.CouponCode,
		CustomerNotes:   r.CustomerNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	extras := resp.Extras
	if extras == nil {
		extras = []string{}
	}

	return &BookingResponse{
		ID:                  resp.ID,
		BookingRef:          resp.BookingRef,
		UserID:              resp.UserID,
		VehicleID:           resp.VehicleID,
		PickupDate:          resp.PickupDate.Format(domain.DateFormat),
		DropoffDate:         resp.DropoffDate.Format(domain.DateFormat),
		Days:                resp.Days,
		PickupLocation:      resp.PickupLocation,
		DropoffLocation:     resp.DropoffLocation,
		Extras:              extras,
		CouponCode:          resp.CouponCode,
		BasePrice:           resp.BasePrice,
		ExtrasPrice:         resp.ExtrasPrice,
		Discount:            resp.Discount,
		TotalPrice:          resp.TotalPrice,
		Status:              resp.Status,
		PaymentStatus:       resp.PaymentStatus,
		PaymentClientSecret: resp.PaymentClientSecret,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
}
