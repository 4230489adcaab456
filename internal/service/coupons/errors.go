package coupons

import (
	"errors"
	"fmt"
)

var (
	// ErrCouponNotFound возвращается, когда купон не найден или деактивирован
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrCouponExpired возвращается, когда срок действия купона истек
	ErrCouponExpired = errors.New("coupon expired")

	// ErrUsageLimitReached возвращается, когда лимит использований купона исчерпан
	ErrUsageLimitReached = errors.New("coupon usage limit reached")

	// ErrMinOrderNotMet возвращается, когда сумма заказа меньше минимальной для купона
	ErrMinOrderNotMet = errors.New("coupon minimum order not met")

	// ErrCodeAlreadyExists возвращается при создании купона с существующим кодом
	ErrCodeAlreadyExists = errors.New("coupon code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// MinOrderError несет порог минимальной суммы заказа для сообщения клиенту
// Разворачивается в ErrMinOrderNotMet через errors.Is
type MinOrderError struct {
	MinOrder float64
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("%v: minimum order %.2f", ErrMinOrderNotMet, e.MinOrder)
}

func (e *MinOrderError) Unwrap() error {
	return ErrMinOrderNotMet
}
