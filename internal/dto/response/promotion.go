package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

type PromotionResponse struct {
	Code               string                 `json:"code"`
	Description        *string                `json:"description,omitempty"`
	DiscountPercentage int                    `json:"discount_percentage"`
	StartDate          time.Time              `json:"start_date"`
	EndDate            time.Time              `json:"end_date"`
	Status             entity.PromotionStatus `json:"status"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func PromotionToResponse(p *entity.Promotion) PromotionResponse {
	return PromotionResponse{
		Code:               p.Code,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		Status:             p.Status,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
