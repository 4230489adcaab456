package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	CancelIntent(ctx context.Context, intentID string) error
	Refund(ctx context.Context, intentID string) (*payments.Refund, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
