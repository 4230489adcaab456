package get_availability

import "time"

// Request модель запроса доступности автомобиля
// StartDate и EndDate опциональны, по умолчанию окно от текущего дня
type Request struct {
	VehicleID int64
	StartDate *time.Time
	EndDate   *time.Time
}

// DayAvailability доступность автомобиля на один день
type DayAvailability struct {
	Date      string `json:"date"` // "2026-06-01"
	Available bool   `json:"available"`
}

// Response модель ответа с календарем доступности
type Response struct {
	VehicleID int64             // ID автомобиля
	StartDate time.Time         // Начало окна
	EndDate   time.Time         // Конец окна
	Available bool              // Свободен ли автомобиль на все дни окна
	Calendar  []DayAvailability // Календарь по дням
}
