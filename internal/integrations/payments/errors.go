package payments

import "errors"

var (
	// ErrPaymentFailed возвращается, когда Stripe отклонил создание платежа
	ErrPaymentFailed = errors.New("payments client: payment failed")

	// ErrIntentNotFound возвращается, когда платежное намерение не найдено
	ErrIntentNotFound = errors.New("payments client: payment intent not found")

	// ErrIntentNotSucceeded возвращается при подтверждении неоплаченного намерения
	ErrIntentNotSucceeded = errors.New("payments client: payment intent not succeeded")

	// ErrRefundFailed возвращается при ошибке возврата средств
	ErrRefundFailed = errors.New("payments client: refund failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")
)
