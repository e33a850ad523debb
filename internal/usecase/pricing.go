package usecase

import (
	"context"
	"math"
	"time"

	"sigac-rental/internal/data/repository"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

// Quote is the breakdown behind a rental amount.
type Quote struct {
	DailyRate          float64
	Days               int
	BaseAmount         float64
	DiscountPercentage int // 0 when no promotion applied
	Amount             float64
}

type PricingCalculator interface {
	Calculate(ctx context.Context, start, end time.Time, plate string, promotionCode *string) (float64, error)
	Quote(ctx context.Context, start, end time.Time, plate string, promotionCode *string) (*Quote, error)
}

type pricingCalculator struct {
	rates      repository.DailyRateRepository
	promotions repository.PromotionRepository
	now        func() time.Time
	log        *zap.Logger
}

func NewPricingCalculator(rates repository.DailyRateRepository, promotions repository.PromotionRepository, log *zap.Logger) PricingCalculator {
	return newPricingCalculator(rates, promotions, time.Now, log)
}

func newPricingCalculator(rates repository.DailyRateRepository, promotions repository.PromotionRepository, now func() time.Time, log *zap.Logger) *pricingCalculator {
	return &pricingCalculator{
		rates:      rates,
		promotions: promotions,
		now:        now,
		log:        log.With(zap.String("service", "pricing")),
	}
}

// RentalDays counts started 24h blocks, never less than one.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func (c *pricingCalculator) Calculate(ctx context.Context, start, end time.Time, plate string, promotionCode *string) (float64, error) {
	quote, err := c.Quote(ctx, start, end, plate, promotionCode)
	if err != nil {
		return 0, err
	}
	return quote.Amount, nil
}

func (c *pricingCalculator) Quote(ctx context.Context, start, end time.Time, plate string, promotionCode *string) (*Quote, error) {
	rate, err := c.rates.FindMostRecent(ctx, plate, start)
	if err != nil {
		return nil, wrapInternal("find daily rate", err)
	}
	if rate == nil {
		return nil, apperror.NotFound("daily rate for vehicle", plate)
	}

	days := RentalDays(start, end)
	quote := &Quote{
		DailyRate:  rate.Amount,
		Days:       days,
		BaseAmount: utils.RoundMoney(rate.Amount * float64(days)),
	}
	amount := rate.Amount * float64(days)

	if code := trimmedPtr(promotionCode); code != nil {
		promotion, err := c.promotions.FindByCode(ctx, *code)
		if err != nil {
			return nil, wrapInternal("find promotion", err)
		}
		if promotion == nil {
			return nil, apperror.NotFound("promotion", *code)
		}

		// Validity is judged at calculation time, not against the rental period.
		if promotion.IsValidAt(c.now()) {
			quote.DiscountPercentage = promotion.DiscountPercentage
			amount = amount * (1 - float64(promotion.DiscountPercentage)/100)
		} else {
			c.log.Debug("Promotion not applied",
				zap.String("code", promotion.Code),
				zap.String("status", string(promotion.Status)),
			)
		}
	}

	quote.Amount = utils.RoundMoney(amount)
	return quote, nil
}
