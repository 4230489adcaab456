package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking already cancelled")

	// ErrCannotCancel возвращается, когда аренда уже началась или завершена
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrRefundFailed возвращается, когда возврат средств не прошел
	// Бронирование в этом случае остается неотмененным
	ErrRefundFailed = errors.New("cancel_booking: refund failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
