package domain

import "time"

// Vehicle represents a vehicle in the rental catalog
type Vehicle struct {
	ID          int64
	Name        string
	Brand       string
	Category    string // SUPERCAR, SUV, SEDAN, CONVERTIBLE ...
	PricePerDay float64
	Image       string
	Images      []string
	Description string
	Features    []string
	Rating      float64
	ReviewCount int
	IsActive    bool // Мягкое удаление: неактивные автомобили скрыты из каталога
	IsAvailable bool // Флаг менеджера парка, не зависит от календаря бронирований
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanBeBooked returns true if the vehicle accepts new bookings
func (v *Vehicle) CanBeBooked() bool {
	return v.IsActive && v.IsAvailable
}

// VehiclesFilter фильтр каталога автомобилей
type VehiclesFilter struct {
	Category      *string
	Brand         *string
	MinPrice      *float64
	MaxPrice      *float64
	Search        *string // Поиск по названию и марке
	OnlyAvailable bool
}
