package confirm_payment

import "time"

// Request модель запроса на подтверждение оплаты
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID пользователя, подтверждающего оплату
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	ID            int64     // ID бронирования
	BookingRef    string    // Код бронирования
	Status        string    // Статус после подтверждения
	PaymentStatus string    // Статус оплаты
	TotalPrice    float64   // Итоговая стоимость
	LoyaltyPoints int64     // Начисленные баллы лояльности
	ConfirmedAt   time.Time // Момент подтверждения
}
