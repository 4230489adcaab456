package vehicle

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

var vehicleColumns = []string{
	"id",
	"name",
	"brand",
	"category",
	"price_per_day",
	"image",
	"images",
	"description",
	"features",
	"rating",
	"review_count",
	"is_active",
	"is_available",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый автомобиль в каталоге
func (r *Repository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns(
			"name",
			"brand",
			"category",
			"price_per_day",
			"image",
			"images",
			"description",
			"features",
			"is_active",
			"is_available",
		).
		Values(
			vehicle.Name,
			vehicle.Brand,
			vehicle.Category,
			vehicle.PricePerDay,
			vehicle.Image,
			pq.Array(vehicle.Images),
			vehicle.Description,
			pq.Array(vehicle.Features),
			true,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicle.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	vehicle.IsActive = true
	vehicle.IsAvailable = true
	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return vehicle, nil
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	vehicle, err := r.scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vehicle: %v", ErrScanRow, err)
	}

	return vehicle, nil
}

// List возвращает активные автомобили каталога с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.VehiclesFilter) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(vehicleColumns...).
		From("vehicles").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Brand != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"brand": "%" + *filter.Brand + "%"})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"price_per_day": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_per_day": *filter.MaxPrice})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}
	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"brand": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanVehicles(rows)
}

// ListBrands возвращает уникальные бренды активных автомобилей
// Используется для построения фильтров каталога
func (r *Repository) ListBrands(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT brand").
		From("vehicles").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("brand").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBrands - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBrands - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	brands := make([]string, 0)
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, fmt.Errorf("%w: ListBrands - scan row: %v", ErrScanRow, err)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBrands - rows error: %v", ErrScanRow, err)
	}

	return brands, nil
}

// VehicleUpdate набор изменяемых полей автомобиля, nil = без изменения
type VehicleUpdate struct {
	Name        *string
	Brand       *string
	Category    *string
	PricePerDay *float64
	Image       *string
	Images      []string
	Description *string
	Features    []string
	IsAvailable *bool
}

// Update обновляет указанные поля автомобиля
func (r *Repository) Update(ctx context.Context, id int64, upd VehicleUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("vehicles").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.Name != nil {
		updateBuilder = updateBuilder.Set("name", *upd.Name)
	}
	if upd.Brand != nil {
		updateBuilder = updateBuilder.Set("brand", *upd.Brand)
	}
	if upd.Category != nil {
		updateBuilder = updateBuilder.Set("category", *upd.Category)
	}
	if upd.PricePerDay != nil {
		updateBuilder = updateBuilder.Set("price_per_day", *upd.PricePerDay)
	}
	if upd.Image != nil {
		updateBuilder = updateBuilder.Set("image", *upd.Image)
	}
	if upd.Images != nil {
		updateBuilder = updateBuilder.Set("images", pq.Array(upd.Images))
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
	}
	if upd.Features != nil {
		updateBuilder = updateBuilder.Set("features", pq.Array(upd.Features))
	}
	if upd.IsAvailable != nil {
		updateBuilder = updateBuilder.Set("is_available", *upd.IsAvailable)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// Deactivate мягко удаляет автомобиль из каталога (is_active = false)
// Физическое удаление не используется - на автомобиль ссылается история бронирований
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicles").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var images, features pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Brand,
		&vehicle.Category,
		&vehicle.PricePerDay,
		&vehicle.Image,
		&images,
		&vehicle.Description,
		&features,
		&vehicle.Rating,
		&vehicle.ReviewCount,
		&vehicle.IsActive,
		&vehicle.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	vehicle.Images = images
	vehicle.Features = features
	vehicle.CreatedAt = createdAt.Time
	vehicle.UpdatedAt = updatedAt.Time

	return &vehicle, nil
}

func (r *Repository) scanVehicles(rows *sql.Rows) ([]*domain.Vehicle, error) {
	vehicles := make([]*domain.Vehicle, 0)

	for rows.Next() {
		vehicle, err := r.scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVehicles - scan row: %v", ErrScanRow, err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVehicles - rows error: %v", ErrScanRow, err)
	}

	return vehicles, nil
}
