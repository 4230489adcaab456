package check_availability

import "time"

// Request модель запроса точечной проверки доступности
type Request struct {
	VehicleID   int64
	PickupDate  time.Time
	DropoffDate time.Time
}

// Response результат проверки диапазона дат
type Response struct {
	VehicleID   int64
	PickupDate  time.Time
	DropoffDate time.Time
	Available   bool
	Days        int // Количество дней аренды для запрошенного диапазона
}
