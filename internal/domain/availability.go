package domain

import (
	"math"
	"time"
)

// RangesOverlap проверяет пересечение двух диапазонов дат аренды
// Границы включительно: p1 <= d2 AND d1 >= p2
// Возврат автомобиля в день X конфликтует с выдачей в тот же день X -
// передача автомобиля день-в-день не поддерживается
func RangesOverlap(p1, d1, p2, d2 time.Time) bool {
	return !p1.After(d2) && !d1.Before(p2)
}

// RentalDays вычисляет количество дней аренды
// Неполные дни округляются вверх
func RentalDays(pickup, dropoff time.Time) int {
	hours := dropoff.Sub(pickup).Hours()
	return int(math.Ceil(hours / 24))
}

// DayAvailability доступность автомобиля на один календарный день
type DayAvailability struct {
	Date      time.Time
	Available bool
}

// BuildCalendar строит календарь доступности по дням окна [start, end]
// День недоступен, если попадает в диапазон хотя бы одного занимающего бронирования
// (границы диапазона включительно)
func BuildCalendar(start, end time.Time, bookings []*Booking) []DayAvailability {
	calendar := make([]DayAvailability, 0)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		booked := false
		for _, b := range bookings {
			if !b.IsOccupying() {
				continue
			}
			if !d.Before(b.PickupDate) && !d.After(b.DropoffDate) {
				booked = true
				break
			}
		}
		calendar = append(calendar, DayAvailability{Date: d, Available: !booked})
	}

	return calendar
}
