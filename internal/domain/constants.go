package domain

// Business validation constants
const (
	MinRentalDays          = 1
	MaxRentalDays          = 90
	MaxNotesLength         = 500
	MaxLocationLength      = 255
	DefaultPage            = 1
	DefaultPageLimit       = 10
	MaxPageLimit           = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, при которых бронирование занимает автомобиль
// Используется в запросах проверки доступности
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// CancellableStatuses список статусов, из которых допустима отмена бронирования
var CancellableStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
