package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID пользователя
	IsAdmin   bool  // Администратор может отменить любое бронирование
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID            int64     // ID бронирования
	BookingRef    string    // Код бронирования
	Status        string    // Статус после отмены
	PaymentStatus string    // Статус оплаты после отмены
	Refunded      bool      // Был ли выполнен возврат средств
	CancelledAt   time.Time // Момент отмены
}
