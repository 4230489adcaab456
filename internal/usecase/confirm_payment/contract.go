package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, id int64) error
}

// VehicleRepository интерфейс репозитория каталога автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*userRepo.User, error)
	AddLoyaltyPoints(ctx context.Context, id int64, points int64) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	GetIntent(ctx context.Context, intentID string) (*payments.PaymentIntent, error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendBookingConfirmation(data mailer.BookingEmail) error
	SendAdminNewBooking(data mailer.BookingEmail) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
