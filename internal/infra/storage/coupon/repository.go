package coupon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

var couponColumns = []string{
	"id",
	"code",
	"discount",
	"type",
	"min_order",
	"max_uses",
	"used_count",
	"expires_at",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с купонами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый купон
func (r *Repository) Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupons").
		Columns(
			"code",
			"discount",
			"type",
			"min_order",
			"max_uses",
			"expires_at",
			"is_active",
		).
		Values(
			coupon.Code,
			coupon.Discount,
			coupon.Type,
			coupon.MinOrder,
			coupon.MaxUses,
			coupon.ExpiresAt,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&coupon.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, ErrCodeAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	coupon.IsActive = true
	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return coupon, nil
}

// GetByCode получает купон по коду (код хранится в верхнем регистре)
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	coupon, err := r.scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	return coupon, nil
}

// List возвращает все купоны (админ)
func (r *Repository) List(ctx context.Context) ([]*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(couponColumns...).
		From("coupons").
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coupons := make([]*domain.Coupon, 0)
	for rows.Next() {
		coupon, err := r.scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return coupons, nil
}

// CouponUpdate набор изменяемых полей купона, nil = без изменения
type CouponUpdate struct {
	Code      *string
	Discount  *float64
	Type      *domain.CouponType
	MinOrder  *float64
	MaxUses   *int
	ExpiresAt *sql.NullTime
	IsActive  *bool
}

// Update обновляет указанные поля купона
// used_count через Update не изменяется - только через IncrementUsage
func (r *Repository) Update(ctx context.Context, id int64, upd CouponUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("coupons").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Code != nil {
		updateBuilder = updateBuilder.Set("code", *upd.Code)
	}
	if upd.Discount != nil {
		updateBuilder = updateBuilder.Set("discount", *upd.Discount)
	}
	if upd.Type != nil {
		updateBuilder = updateBuilder.Set("type", *upd.Type)
	}
	if upd.MinOrder != nil {
		updateBuilder = updateBuilder.Set("min_order", *upd.MinOrder)
	}
	if upd.MaxUses != nil {
		updateBuilder = updateBuilder.Set("max_uses", *upd.MaxUses)
	}
	if upd.ExpiresAt != nil {
		updateBuilder = updateBuilder.Set("expires_at", *upd.ExpiresAt)
	}
	if upd.IsActive != nil {
		updateBuilder = updateBuilder.Set("is_active", *upd.IsActive)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return ErrCodeAlreadyExists
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCouponNotFound
	}

	return nil
}

// Delete удаляет купон (админ)
// Бронирования хранят код купона и снимок скидки, поэтому удаление
// не затрагивает исторические данные
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("coupons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCouponNotFound
	}

	return nil
}

// IncrementUsage атомарно увеличивает счетчик использований купона
// Проверка лимита и инкремент выполняются одним UPDATE с условием -
// read-modify-write последовательность здесь недопустима, иначе при
// конкурентных бронированиях used_count превысит max_uses
func (r *Repository) IncrementUsage(ctx context.Context, code string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Expr("(max_uses IS NULL OR used_count < max_uses)")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	// Ноль строк: либо купона нет, либо лимит исчерпан
	if rowsAffected == 0 {
		if _, err := r.GetByCode(ctx, code); err != nil {
			return err
		}
		return ErrUsageLimitReached
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var maxUses sql.NullInt64
	var expiresAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Discount,
		&coupon.Type,
		&coupon.MinOrder,
		&maxUses,
		&coupon.UsedCount,
		&expiresAt,
		&coupon.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxUses.Valid {
		v := int(maxUses.Int64)
		coupon.MaxUses = &v
	}
	if expiresAt.Valid {
		coupon.ExpiresAt = &expiresAt.Time
	}
	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return &coupon, nil
}
