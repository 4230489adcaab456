package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/payments"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOccupying(ctx context.Context, vehicleID int64, pickup, dropoff time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// VehicleRepository интерфейс репозитория каталога автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*userRepo.User, error)
}

// CouponService интерфейс сервиса купонов
type CouponService interface {
	GetApplicable(ctx context.Context, code string, orderAmount float64) (*domain.Coupon, error)
	RedeemUsage(ctx context.Context, code string) error
}

// PaymentsClient интерфейс платежного клиента
type PaymentsClient interface {
	CreateIntent(ctx context.Context, amount float64, bookingRef string, userID int64) (*payments.PaymentIntent, error)
	CancelIntent(ctx context.Context, intentID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
