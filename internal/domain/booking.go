package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusInProgress BookingStatus = "IN_PROGRESS"
	StatusCompleted  BookingStatus = "COMPLETED"
	StatusCancelled  BookingStatus = "CANCELLED"
)

// PaymentStatus represents the payment state of a booking
// Отдельная ось от статуса бронирования, связана бизнес-правилами:
// отмена оплаченного бронирования влечет возврат средств
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

// Booking represents a vehicle rental booking
type Booking struct {
	ID         int64
	BookingRef string // Человекочитаемый уникальный код, например "APEX-LX3F9A2B"
	UserID     int64
	VehicleID  int64

	PickupDate      time.Time
	DropoffDate     time.Time
	Days            int
	PickupLocation  string
	DropoffLocation string

	// Snapshot pricing: цены фиксируются при создании и не меняются
	// при последующих изменениях тарифов автомобиля или купона
	Extras      []string
	CouponCode  *string
	BasePrice   float64
	ExtrasPrice float64
	Discount    float64
	TotalPrice  float64

	Status          BookingStatus
	PaymentStatus   PaymentStatus
	PaymentIntentID *string

	CustomerNotes *string
	AdminNotes    *string
	CancelledAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking reserves vehicle time
// Занимающими считаются бронирования в статусах PENDING, CONFIRMED, IN_PROGRESS
func (b *Booking) IsOccupying() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanConfirmPayment returns true if payment confirmation is still expected
func (b *Booking) CanConfirmPayment() bool {
	return b.Status == StatusPending && b.PaymentStatus == PaymentPending
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPaid returns true if the booking has been paid for
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid
}

// LoyaltyPoints возвращает количество баллов лояльности за бронирование
// Начисляются при подтверждении оплаты: 1 балл за единицу валюты, дробная часть отбрасывается
func (b *Booking) LoyaltyPoints() int64 {
	return int64(b.TotalPrice)
}

// BookingsFilter фильтр для получения списка бронирований (админ)
type BookingsFilter struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus
	StartDate     *time.Time // Нижняя граница pickup_date (опционально)
	EndDate       *time.Time // Верхняя граница dropoff_date (опционально)
	Page          int
	Limit         int
}

// ValidStatusTransition проверяет допустимость перехода статуса бронирования
// Переходы: PENDING → CONFIRMED → IN_PROGRESS → COMPLETED
// CANCELLED достижим только через операцию отмены, не через смену статуса
func ValidStatusTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusInProgress || to == StatusCompleted
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}
