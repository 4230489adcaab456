package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64      // ID пользователя
	VehicleID       int64      // ID автомобиля
	PickupDate      time.Time  // Дата получения (без времени)
	DropoffDate     time.Time  // Дата возврата (без времени)
	PickupLocation  string     // Место получения
	DropoffLocation string     // Место возврата
	Extras          []string   // Коды дополнительных услуг
	CouponCode      *string    // Код купона (опционально)
	CustomerNotes   *string    // Пожелания клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	BookingRef      string    // Человекочитаемый код бронирования
	UserID          int64     // ID пользователя
	VehicleID       int64     // ID автомобиля
	PickupDate      time.Time // Дата получения
	DropoffDate     time.Time // Дата возврата
	Days            int       // Количество дней аренды
	PickupLocation  string    // Место получения
	DropoffLocation string    // Место возврата
	Extras          []string  // Коды дополнительных услуг
	CouponCode      *string   // Примененный купон

	// Зафиксированная расшифровка стоимости
	BasePrice   float64
	ExtrasPrice float64
	Discount    float64
	TotalPrice  float64

	Status        string // Статус бронирования
	PaymentStatus string // Статус оплаты

	// Данные для завершения оплаты на клиенте
	PaymentClientSecret *string

	CreatedAt time.Time
}
