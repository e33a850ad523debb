package request

import "time"

type CreatePromotionRequest struct {
	Code               string    `json:"code" validate:"required,min=3,max=30"`
	Description        *string   `json:"description,omitempty" validate:"omitempty,max=255"`
	DiscountPercentage int       `json:"discount_percentage" validate:"required,min=1,max=100"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Status             string    `json:"status" validate:"required,oneof=SCHEDULED ACTIVE INACTIVE"`
}

type UpdatePromotionRequest struct {
	Description        *string    `json:"description,omitempty" validate:"omitempty,max=255"`
	DiscountPercentage *int       `json:"discount_percentage,omitempty" validate:"omitempty,min=1,max=100"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED ACTIVE INACTIVE"`
}

type PromotionListRequest struct {
	PaginatedRequest
	Status *string `validate:"omitempty,oneof=SCHEDULED ACTIVE INACTIVE"`
}
