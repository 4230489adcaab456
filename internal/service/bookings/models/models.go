package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// GetUserBookingsRequest запрос на получение истории бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// GetBookingsRequest запрос на получение бронирований с фильтрацией (админ)
type GetBookingsRequest struct {
	Status        *string    `json:"status,omitempty"`
	PaymentStatus *string    `json:"paymentStatus,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Page          int        `json:"page,omitempty"`
	Limit         int        `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Page:      r.Page,
		Limit:     r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.PaymentStatus != nil {
		paymentStatus, err := ToDomainPaymentStatus(*r.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = &paymentStatus
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования (админ)
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64    `json:"id"`
	BookingRef      string   `json:"bookingRef"`
	UserID          int64    `json:"userId"`
	VehicleID       int64    `json:"vehicleId"`
	PickupDate      string   `json:"pickupDate"`  // "2026-06-01"
	DropoffDate     string   `json:"dropoffDate"` // "2026-06-04"
	Days            int      `json:"days"`
	PickupLocation  string   `json:"pickupLocation"`
	DropoffLocation string   `json:"dropoffLocation"`
	Extras          []string `json:"extras"`
	CouponCode      *string  `json:"couponCode,omitempty"`

	BasePrice   float64 `json:"basePrice"`
	ExtrasPrice float64 `json:"extrasPrice"`
	Discount    float64 `json:"discount"`
	TotalPrice  float64 `json:"totalPrice"`

	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	CustomerNotes *string `json:"customerNotes,omitempty"`
	AdminNotes    *string `json:"adminNotes,omitempty"`
	CancelledAt   *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований и пагинацией
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		BookingRef:      b.BookingRef,
		UserID:          b.UserID,
		VehicleID:       b.VehicleID,
		PickupDate:      b.PickupDate.Format(domain.DateFormat),
		DropoffDate:     b.DropoffDate.Format(domain.DateFormat),
		Days:            b.Days,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		Extras:          b.Extras,
		CouponCode:      b.CouponCode,
		BasePrice:       b.BasePrice,
		ExtrasPrice:     b.ExtrasPrice,
		Discount:        b.Discount,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		CustomerNotes:   b.CustomerNotes,
		AdminNotes:      b.AdminNotes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if resp.Extras == nil {
		resp.Extras = []string{}
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, total int64, page, limit int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)

	validStatuses := []domain.PaymentStatus{
		domain.PaymentPending,
		domain.PaymentPaid,
		domain.PaymentRefunded,
		domain.PaymentFailed,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidPaymentStatus
}
