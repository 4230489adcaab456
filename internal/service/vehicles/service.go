package vehicles

import (
	"context"
	"errors"
	"fmt"

	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

// Service сервис каталога автомобилей
type Service struct {
	vehicleRepo VehicleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(vehicleRepo VehicleRepository, logger Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// List возвращает активные автомобили каталога с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListVehiclesRequest) (*models.VehicleListResponse, error) {
	s.logger.Info("List: fetching vehicles catalog")

	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		s.logger.Warn("List: invalid price range min=%.2f max=%.2f", *req.MinPrice, *req.MaxPrice)
		return nil, fmt.Errorf("%w: minPrice greater than maxPrice", ErrInvalidInput)
	}

	vehicles, err := s.vehicleRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d vehicles", len(vehicles))
	return models.FromDomainVehicleList(vehicles), nil
}

// ListBrands возвращает бренды активных автомобилей для фильтров каталога
func (s *Service) ListBrands(ctx context.Context) (*models.BrandListResponse, error) {
	s.logger.Info("ListBrands: fetching brands")

	brands, err := s.vehicleRepo.ListBrands(ctx)
	if err != nil {
		s.logger.Error("ListBrands: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBrands - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBrands: successfully fetched %d brands", len(brands))
	return &models.BrandListResponse{Brands: brands}, nil
}

// GetByID получает автомобиль по ID
// Неактивные автомобили скрыты из публичного каталога
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VehicleResponse, error) {
	s.logger.Info("GetByID: fetching vehicle id=%d", id)

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("GetByID: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("GetByID: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !vehicle.IsActive {
		s.logger.Warn("GetByID: vehicle id=%d is deactivated", id)
		return nil, ErrVehicleNotFound
	}

	s.logger.Info("GetByID: successfully fetched vehicle id=%d", id)
	return models.FromDomainVehicle(vehicle), nil
}

// Create добавляет новый автомобиль в каталог (админ)
func (s *Service) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Create: creating vehicle name=%s brand=%s", req.Name, req.Brand)

	if err := s.validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	vehicle, err := s.vehicleRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created vehicle id=%d", vehicle.ID)
	return models.FromDomainVehicle(vehicle), nil
}

// Update обновляет данные автомобиля (админ)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Update: updating vehicle id=%d", id)

	if req.PricePerDay != nil && *req.PricePerDay <= 0 {
		s.logger.Warn("Update: invalid pricePerDay=%.2f for vehicle id=%d", *req.PricePerDay, id)
		return nil, fmt.Errorf("%w: pricePerDay must be positive", ErrInvalidInput)
	}

	if err := s.vehicleRepo.Update(ctx, id, req.ToRepoUpdate()); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Update: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Update: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to fetch updated vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated vehicle id=%d", id)
	return models.FromDomainVehicle(vehicle), nil
}

// Delete мягко удаляет автомобиль из каталога (админ)
// История бронирований автомобиля сохраняется
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deactivating vehicle id=%d", id)

	if err := s.vehicleRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Delete: vehicle id=%d not found", id)
			return ErrVehicleNotFound
		}
		s.logger.Error("Delete: repository error for vehicle id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deactivated vehicle id=%d", id)
	return nil
}

func (s *Service) validateCreateRequest(req *models.CreateVehicleRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Brand == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidInput)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if req.PricePerDay <= 0 {
		return fmt.Errorf("%w: pricePerDay must be positive", ErrInvalidInput)
	}
	return nil
}
