package confirm_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("confirm_payment: access denied")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении оплаты
	ErrAlreadyConfirmed = errors.New("confirm_payment: booking already confirmed")

	// ErrNotAwaitingPayment возвращается, когда бронирование не ожидает оплаты
	ErrNotAwaitingPayment = errors.New("confirm_payment: booking is not awaiting payment")

	// ErrPaymentNotSucceeded возвращается, когда платеж в Stripe не завершен
	ErrPaymentNotSucceeded = errors.New("confirm_payment: payment not succeeded")

	// ErrNoPaymentIntent возвращается, когда у бронирования нет платежного намерения
	ErrNoPaymentIntent = errors.New("confirm_payment: booking has no payment intent")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
