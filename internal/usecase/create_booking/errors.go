package create_booking

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден или удален из каталога
	ErrVehicleNotFound = errors.New("create_booking: vehicle not found")

	// ErrVehicleUnavailable возвращается, когда автомобиль снят с бронирования менеджером парка
	ErrVehicleUnavailable = errors.New("create_booking: vehicle is unavailable")

	// ErrVehicleAlreadyBooked возвращается, когда даты пересекаются с существующим бронированием
	ErrVehicleAlreadyBooked = errors.New("create_booking: vehicle is already booked for these dates")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidDates возвращается при некорректном диапазоне дат аренды
	ErrInvalidDates = errors.New("create_booking: invalid rental dates")

	// ErrPaymentFailed возвращается, когда не удалось создать платеж
	ErrPaymentFailed = errors.New("create_booking: payment failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
