package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// Request модели

// ListVehiclesRequest запрос на получение каталога автомобилей
type ListVehiclesRequest struct {
	Category      *string  `json:"category,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	Search        *string  `json:"search,omitempty"`
	OnlyAvailable bool     `json:"onlyAvailable,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListVehiclesRequest) ToDomainFilter() domain.VehiclesFilter {
	return domain.VehiclesFilter{
		Category:      r.Category,
		Brand:         r.Brand,
		MinPrice:      r.MinPrice,
		MaxPrice:      r.MaxPrice,
		Search:        r.Search,
		OnlyAvailable: r.OnlyAvailable,
	}
}

// CreateVehicleRequest запрос на добавление автомобиля в каталог
type CreateVehicleRequest struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	PricePerDay float64  `json:"pricePerDay"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateVehicleRequest) ToDomain() *domain.Vehicle {
	return &domain.Vehicle{
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    r.Category,
		PricePerDay: r.PricePerDay,
		Image:       r.Image,
		Images:      r.Images,
		Description: r.Description,
		Features:    r.Features,
	}
}

// UpdateVehicleRequest запрос на обновление автомобиля, nil = без изменения
type UpdateVehicleRequest struct {
	Name        *string  `json:"name,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Category    *string  `json:"category,omitempty"`
	PricePerDay *float64 `json:"pricePerDay,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
	Description *string  `json:"description,omitempty"`
	Features    []string `json:"features,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

// ToRepoUpdate конвертирует request в структуру обновления репозитория
func (r *UpdateVehicleRequest) ToRepoUpdate() vehicleRepo.VehicleUpdate {
	return vehicleRepo.VehicleUpdate{
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    r.Category,
		PricePerDay: r.PricePerDay,
		Image:       r.Image,
		Images:      r.Images,
		Description: r.Description,
		Features:    r.Features,
		IsAvailable: r.IsAvailable,
	}
}

// Response модели

// VehicleResponse ответ с данными автомобиля
type VehicleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	PricePerDay float64   `json:"pricePerDay"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VehicleListResponse ответ со списком автомобилей
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// BrandListResponse ответ со списком брендов каталога
type BrandListResponse struct {
	Brands []string `json:"brands"`
}

// Методы конвертации

// FromDomainVehicle конвертирует domain модель в DTO
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}

	return &VehicleResponse{
		ID:          v.ID,
		Name:        v.Name,
		Brand:       v.Brand,
		Category:    v.Category,
		PricePerDay: v.PricePerDay,
		Image:       v.Image,
		Images:      v.Images,
		Description: v.Description,
		Features:    v.Features,
		Rating:      v.Rating,
		ReviewCount: v.ReviewCount,
		IsAvailable: v.IsAvailable,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// FromDomainVehicleList конвертирует список domain моделей в DTO
func FromDomainVehicleList(vehicles []*domain.Vehicle) *VehicleListResponse {
	resp := &VehicleListResponse{
		Vehicles: make([]VehicleResponse, 0, len(vehicles)),
	}

	for _, v := range vehicles {
		if vehicleResp := FromDomainVehicle(v); vehicleResp != nil {
			resp.Vehicles = append(resp.Vehicles, *vehicleResp)
		}
	}

	return resp
}
