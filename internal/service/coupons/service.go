package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	couponRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-RentalService/internal/service/coupons/models"
)

// Service сервис для работы с купонами
type Service struct {
	couponRepo CouponRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// Validate проверяет применимость купона к сумме заказа
// Порядок проверок фиксирован: существование, срок действия,
// лимит использований, минимальная сумма заказа
func (s *Service) Validate(ctx context.Context, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, error) {
	code := domain.NormalizeCouponCode(req.Code)
	s.logger.Info("Validate: validating coupon code=%s", code)

	coupon, err := s.getApplicable(ctx, code, req.OrderAmount)
	if err != nil {
		return nil, err
	}

	// Без суммы заказа процентная скидка считается от нуля
	var orderAmount float64
	if req.OrderAmount != nil {
		orderAmount = *req.OrderAmount
	}
	discountAmount := coupon.CalculateDiscount(orderAmount)

	s.logger.Info("Validate: coupon code=%s valid, discountAmount=%.2f", code, discountAmount)
	return &models.ValidateCouponResponse{
		Code:           coupon.Code,
		Type:           string(coupon.Type),
		Discount:       coupon.Discount,
		DiscountAmount: discountAmount,
	}, nil
}

// GetApplicable возвращает доменную модель купона, применимого к сумме заказа
// Используется при создании бронирования, где нужен сам купон для расчета цены
func (s *Service) GetApplicable(ctx context.Context, code string, orderAmount float64) (*domain.Coupon, error) {
	return s.getApplicable(ctx, domain.NormalizeCouponCode(code), &orderAmount)
}

// RedeemUsage атомарно увеличивает счетчик использований купона
// Вызывается внутри транзакции создания бронирования
func (s *Service) RedeemUsage(ctx context.Context, code string) error {
	normalized := domain.NormalizeCouponCode(code)

	if err := s.couponRepo.IncrementUsage(ctx, normalized); err != nil {
		switch {
		case errors.Is(err, couponRepo.ErrCouponNotFound):
			s.logger.Warn("RedeemUsage: coupon code=%s not found", normalized)
			return ErrCouponNotFound
		case errors.Is(err, couponRepo.ErrUsageLimitReached):
			s.logger.Warn("RedeemUsage: usage limit reached for coupon code=%s", normalized)
			return ErrUsageLimitReached
		default:
			s.logger.Error("RedeemUsage: repository error for coupon code=%s: %v", normalized, err)
			return fmt.Errorf("%w: RedeemUsage - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("RedeemUsage: incremented usage for coupon code=%s", normalized)
	return nil
}

// Create создает новый купон (админ)
func (s *Service) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: creating coupon code=%s", req.Code)

	if err := s.validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	coupon, err := s.couponRepo.Create(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, couponRepo.ErrCodeAlreadyExists) {
			s.logger.Warn("Create: coupon code=%s already exists", req.Code)
			return nil, ErrCodeAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created coupon id=%d code=%s", coupon.ID, coupon.Code)
	return models.FromDomainCoupon(coupon), nil
}

// List возвращает все купоны (админ)
func (s *Service) List(ctx context.Context) (*models.CouponListResponse, error) {
	s.logger.Info("List: fetching coupons")

	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d coupons", len(coupons))
	return models.FromDomainCouponList(coupons), nil
}

// Update обновляет купон (админ)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCouponRequest) error {
	s.logger.Info("Update: updating coupon id=%d", id)

	if req.Type != nil && !models.ValidCouponType(*req.Type) {
		s.logger.Warn("Update: invalid coupon type=%s for id=%d", *req.Type, id)
		return fmt.Errorf("%w: invalid coupon type", ErrInvalidInput)
	}
	if req.Discount != nil && *req.Discount <= 0 {
		s.logger.Warn("Update: invalid discount=%.2f for id=%d", *req.Discount, id)
		return fmt.Errorf("%w: discount must be positive", ErrInvalidInput)
	}

	if err := s.couponRepo.Update(ctx, id, req.ToRepoUpdate()); err != nil {
		switch {
		case errors.Is(err, couponRepo.ErrCouponNotFound):
			s.logger.Warn("Update: coupon id=%d not found", id)
			return ErrCouponNotFound
		case errors.Is(err, couponRepo.ErrCodeAlreadyExists):
			s.logger.Warn("Update: coupon code already exists for id=%d", id)
			return ErrCodeAlreadyExists
		default:
			s.logger.Error("Update: repository error for coupon id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated coupon id=%d", id)
	return nil
}

// Delete удаляет купон (админ)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting coupon id=%d", id)

	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Delete: coupon id=%d not found", id)
			return ErrCouponNotFound
		}
		s.logger.Error("Delete: repository error for coupon id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted coupon id=%d", id)
	return nil
}

// getApplicable выполняет цепочку проверок купона
// nil orderAmount означает, что сумма заказа еще не известна
func (s *Service) getApplicable(ctx context.Context, code string, orderAmount *float64) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("getApplicable: coupon code=%s not found", code)
			return nil, ErrCouponNotFound
		}
		s.logger.Error("getApplicable: repository error for coupon code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: getApplicable - repository error: %v", ErrInternal, err)
	}

	// Деактивированный купон неотличим от несуществующего
	if !coupon.IsActive {
		s.logger.Warn("getApplicable: coupon code=%s is deactivated", code)
		return nil, ErrCouponNotFound
	}

	if coupon.IsExpired(time.Now()) {
		s.logger.Warn("getApplicable: coupon code=%s expired at %v", code, coupon.ExpiresAt)
		return nil, ErrCouponExpired
	}

	if coupon.UsageLimitReached() {
		s.logger.Warn("getApplicable: usage limit reached for coupon code=%s", code)
		return nil, ErrUsageLimitReached
	}

	// Минимальная сумма проверяется только при известной сумме заказа
	if orderAmount != nil && *orderAmount < coupon.MinOrder {
		s.logger.Warn("getApplicable: order amount %.2f below minimum %.2f for coupon code=%s",
			*orderAmount, coupon.MinOrder, code)
		return nil, &MinOrderError{MinOrder: coupon.MinOrder}
	}

	return coupon, nil
}

func (s *Service) validateCreateRequest(req *models.CreateCouponRequest) error {
	if domain.NormalizeCouponCode(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if !models.ValidCouponType(req.Type) {
		return fmt.Errorf("%w: invalid coupon type", ErrInvalidInput)
	}
	if req.Discount <= 0 {
		return fmt.Errorf("%w: discount must be positive", ErrInvalidInput)
	}
	if req.Type == string(domain.CouponPercent) && req.Discount > 100 {
		return fmt.Errorf("%w: percent discount cannot exceed 100", ErrInvalidInput)
	}
	if req.MinOrder < 0 {
		return fmt.Errorf("%w: minOrder cannot be negative", ErrInvalidInput)
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return fmt.Errorf("%w: maxUses must be positive", ErrInvalidInput)
	}
	return nil
}
