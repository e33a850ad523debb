package entity

import (
	"fmt"
	"time"
)

type PromotionStatus string

const (
	PromotionStatusScheduled PromotionStatus = "SCHEDULED"
	PromotionStatusActive    PromotionStatus = "ACTIVE"
	PromotionStatusInactive  PromotionStatus = "INACTIVE"
)

func ParsePromotionStatus(s string) (PromotionStatus, error) {
	switch status := PromotionStatus(s); status {
	case PromotionStatusScheduled, PromotionStatusActive, PromotionStatusInactive:
		return status, nil
	default:
		return "", fmt.Errorf("invalid promotion status: %s", s)
	}
}

type Promotion struct {
	Code               string          `db:"code"`
	Description        *string         `db:"description"`
	DiscountPercentage int             `db:"discount_percentage"` // 1-100
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
	Status             PromotionStatus `db:"status"`
	Timestamps
}

// IsValidAt reports whether the promotion is ACTIVE and at inside its own window (inclusive).
func (p *Promotion) IsValidAt(at time.Time) bool {
	if p.Status != PromotionStatusActive {
		return false
	}
	return !at.Before(p.StartDate) && !at.After(p.EndDate)
}
