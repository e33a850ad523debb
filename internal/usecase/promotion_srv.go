package usecase

import (
	"context"
	"strings"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/dto/response"
	"sigac-rental/pkg/apperror"

	"go.uber.org/zap"
)

type PromotionService interface {
	Create(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error)
	GetByCode(ctx context.Context, code string) (*response.PromotionResponse, error)
	List(ctx context.Context, req *request.PromotionListRequest) (*response.PaginatedResponse[response.PromotionResponse], error)
	Update(ctx context.Context, code string, req *request.UpdatePromotionRequest) (*response.PromotionResponse, error)
	Delete(ctx context.Context, code string) error
}

type promotionService struct {
	promotionRepo repository.PromotionRepository
	now           func() time.Time
	log           *zap.Logger
}

func NewPromotionService(promotionRepo repository.PromotionRepository, log *zap.Logger) PromotionService {
	return &promotionService{
		promotionRepo: promotionRepo,
		now:           time.Now,
		log:           log.With(zap.String("service", "promotion")),
	}
}

func (s *promotionService) Create(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	promotion := &entity.Promotion{
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:        trimmedPtr(req.Description),
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Status:             entity.PromotionStatus(req.Status),
	}
	promotion.Touch(s.now())

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, wrapInternal("create promotion", err)
	}

	s.log.Info("Promotion created", zap.String("code", promotion.Code), zap.Int("discount", promotion.DiscountPercentage))
	resp := response.PromotionToResponse(promotion)
	return &resp, nil
}

func (s *promotionService) GetByCode(ctx context.Context, code string) (*response.PromotionResponse, error) {
	promotion, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := response.PromotionToResponse(promotion)
	return &resp, nil
}

func (s *promotionService) List(ctx context.Context, req *request.PromotionListRequest) (*response.PaginatedResponse[response.PromotionResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var status *entity.PromotionStatus
	if req.Status != nil {
		st := entity.PromotionStatus(*req.Status)
		status = &st
	}

	promotions, err := s.promotionRepo.FindAll(ctx, status, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list promotions", err)
	}
	total, err := s.promotionRepo.CountAll(ctx, status)
	if err != nil {
		return nil, wrapInternal("count promotions", err)
	}

	items := make([]response.PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		items = append(items, response.PromotionToResponse(p))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *promotionService) Update(ctx context.Context, code string, req *request.UpdatePromotionRequest) (*response.PromotionResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	promotion, err := s.find(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		promotion.Description = trimmedPtr(req.Description)
	}
	if req.DiscountPercentage != nil {
		promotion.DiscountPercentage = *req.DiscountPercentage
	}
	if req.StartDate != nil {
		promotion.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		promotion.EndDate = *req.EndDate
	}
	if req.Status != nil {
		promotion.Status = entity.PromotionStatus(*req.Status)
	}
	if promotion.EndDate.Before(promotion.StartDate) {
		return nil, apperror.Validation("end_date must not be before start_date",
			map[string]string{"end_date": "must not be before start_date"})
	}
	promotion.UpdatedAt = s.now()

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, wrapInternal("update promotion", err)
	}

	resp := response.PromotionToResponse(promotion)
	return &resp, nil
}

func (s *promotionService) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := s.promotionRepo.Delete(ctx, code); err != nil {
		return wrapInternal("delete promotion", err)
	}
	s.log.Info("Promotion deleted", zap.String("code", code))
	return nil
}

func (s *promotionService) find(ctx context.Context, code string) (*entity.Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	promotion, err := s.promotionRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, wrapInternal("find promotion", err)
	}
	if promotion == nil {
		return nil, apperror.NotFound("promotion", code)
	}
	return promotion, nil
}
