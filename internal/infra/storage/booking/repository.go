package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_ref",
	"user_id",
	"vehicle_id",
	"pickup_date",
	"dropoff_date",
	"days",
	"pickup_location",
	"dropoff_location",
	"extras",
	"coupon_code",
	"base_price",
	"extras_price",
	"discount",
	"total_price",
	"status",
	"payment_status",
	"payment_intent_id",
	"customer_notes",
	"admin_notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// создание с проверкой доступности выполняется именно так,
// чтобы исключить двойное бронирование автомобиля
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_ref",
			"user_id",
			"vehicle_id",
			"pickup_date",
			"dropoff_date",
			"days",
			"pickup_location",
			"dropoff_location",
			"extras",
			"coupon_code",
			"base_price",
			"extras_price",
			"discount",
			"total_price",
			"status",
			"payment_status",
			"payment_intent_id",
			"customer_notes",
		).
		Values(
			booking.BookingRef,
			booking.UserID,
			booking.VehicleID,
			booking.PickupDate,
			booking.DropoffDate,
			booking.Days,
			booking.PickupLocation,
			booking.DropoffLocation,
			pq.Array(booking.Extras),
			booking.CouponCode,
			booking.BasePrice,
			booking.ExtrasPrice,
			booking.Discount,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentIntentID,
			booking.CustomerNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindOccupying возвращает занимающие бронирования автомобиля,
// пересекающиеся с диапазоном [pickup, dropoff] (границы включительно)
//
// Правило пересечения: pickup_date <= dropoff AND dropoff_date >= pickup.
// excludeID позволяет исключить само бронирование при перепроверках.
//
// Внутри транзакции добавляет FOR UPDATE - строки блокируются до конца
// транзакции, что закрывает гонку двух одновременных бронирований
// одного автомобиля на пересекающиеся даты
func (r *Repository) FindOccupying(ctx context.Context, vehicleID int64, pickup, dropoff time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vehicle_id": vehicleID}).
		Where(squirrel.Eq{"status": occupying}).
		Where(squirrel.LtOrEq{"pickup_date": dropoff}).
		Where(squirrel.GtOrEq{"dropoff_date": pickup})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOccupying - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByUserID получает историю бронирований пользователя с пагинацией
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus, page, limit int) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"user_id": userID}}
	if status != nil {
		where = append(where, squirrel.Eq{"status": *status})
	}

	total, err := r.count(ctx, executor, where, "GetByUserID")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetWithFilter получает бронирования с гибкой фильтрацией и пагинацией (админ)
// Поддерживает фильтры по статусу, статусу оплаты и периоду
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}
	if filter.PaymentStatus != nil {
		where = append(where, squirrel.Eq{"payment_status": *filter.PaymentStatus})
	}
	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"pickup_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"dropoff_date": *filter.EndDate})
	}

	total, err := r.count(ctx, executor, where, "GetWithFilter")
	if err != nil {
		return nil, 0, err
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64((filter.Page - 1) * filter.Limit))

	if len(where) > 0 {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// UpdateStatus обновляет статус бронирования и, опционально, заметки администратора
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, adminNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *adminNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// ConfirmPayment переводит бронирование в CONFIRMED/PAID
//
// Переход выполняется одним UPDATE с предикатом исходного состояния:
// конкурирующее подтверждение того же бронирования затронет ноль строк
// и получит ErrStateConflict вместо повторного перевода
func (r *Repository) ConfirmPayment(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", domain.PaymentPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"payment_status": domain.PaymentPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, id, "ConfirmPayment")
}

// Cancel отменяет бронирование, фиксируя момент отмены и итоговый статус оплаты
// UPDATE защищен предикатом по отменяемым статусам - повторная или
// конкурирующая отмена получает ErrStateConflict
func (r *Repository) Cancel(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellable := make([]string, len(domain.CancellableStatuses))
	for i, s := range domain.CancellableStatuses {
		cancellable[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("payment_status", paymentStatus).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellable}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, id, "Cancel")
}

// count выполняет COUNT(*) с тем же условием, что и основной запрос
func (r *Repository) count(ctx context.Context, executor DBExecutor, where squirrel.And, method string) (int64, error) {
	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}

	query, args, err := countBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, method, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, method, err)
	}

	return total, nil
}

// execExpectingRow выполняет запрос и проверяет, что затронута хотя бы одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execGuarded выполняет условный UPDATE перехода состояния
// Ноль затронутых строк означает, что бронирование либо не существует,
// либо уже не в ожидаемом состоянии - различаем повторным чтением
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, id int64, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			if errors.Is(err, ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: %s - recheck booking: %v", ErrExecQuery, method, err)
		}
		return ErrStateConflict
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var extras pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.UserID,
		&booking.VehicleID,
		&booking.PickupDate,
		&booking.DropoffDate,
		&booking.Days,
		&booking.PickupLocation,
		&booking.DropoffLocation,
		&extras,
		&booking.CouponCode,
		&booking.BasePrice,
		&booking.ExtrasPrice,
		&booking.Discount,
		&booking.TotalPrice,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentIntentID,
		&booking.CustomerNotes,
		&booking.AdminNotes,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Extras = extras
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
