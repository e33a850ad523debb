package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalDays(t *testing.T) {
	start := day(0)
	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"one hour rounds up to a day", start.Add(time.Hour), 1},
		{"exactly one day", start.Add(24 * time.Hour), 1},
		{"one day and a minute", start.Add(24*time.Hour + time.Minute), 2},
		{"four days", day(4), 4},
		{"zero length is still a day", start, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(start, tt.end))
		})
	}
}

func TestCalculate_WithDiscount(t *testing.T) {
	f := newFixture(t)

	amount, err := f.pricing().Calculate(context.Background(), day(1), day(5), testPlate, strPtr(promoCode))
	require.NoError(t, err)
	assert.Equal(t, 360.00, amount)
}

func TestCalculate_Idempotent(t *testing.T) {
	f := newFixture(t)
	calc := f.pricing()

	first, err := calc.Calculate(context.Background(), day(1), day(3), testPlate, strPtr(promoCode))
	require.NoError(t, err)
	second, err := calc.Calculate(context.Background(), day(1), day(3), testPlate, strPtr(promoCode))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_UsesRateEffectiveAtStart(t *testing.T) {
	f := newFixture(t)
	f.db.state.rates = append(f.db.state.rates, &entity.DailyRate{
		ID: uuid.New(), VehiclePlate: testPlate, Amount: 150, EffectiveFrom: day(10),
	})
	calc := f.pricing()

	before, err := calc.Calculate(context.Background(), day(1), day(3), testPlate, nil)
	require.NoError(t, err)
	assert.Equal(t, 200.00, before)

	after, err := calc.Calculate(context.Background(), day(10), day(12), testPlate, nil)
	require.NoError(t, err)
	assert.Equal(t, 300.00, after)
}

func TestCalculate_PromotionNotApplied(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *entity.Promotion)
	}{
		{"expired", func(p *entity.Promotion) { p.EndDate = day(-1).Add(time.Hour) }},
		{"not started", func(p *entity.Promotion) { p.StartDate = day(2) }},
		{"inactive", func(p *entity.Promotion) { p.Status = entity.PromotionStatusInactive }},
		{"scheduled", func(p *entity.Promotion) { p.Status = entity.PromotionStatusScheduled }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mutate(f.db.state.promotions[promoCode])

			quote, err := f.pricing().Quote(context.Background(), day(1), day(5), testPlate, strPtr(promoCode))
			require.NoError(t, err)
			assert.Equal(t, 400.00, quote.Amount)
			assert.Zero(t, quote.DiscountPercentage)
		})
	}
}

func TestCalculate_NotFound(t *testing.T) {
	f := newFixture(t)
	calc := f.pricing()

	_, err := calc.Calculate(context.Background(), day(1), day(2), testPlate, strPtr("UNKNOWN"))
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "unknown promotion")

	_, err = calc.Calculate(context.Background(), day(1), day(2), "XYZ1234", nil)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "no daily rate")

	_, err = calc.Calculate(context.Background(), day(-40), day(-38), testPlate, nil)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "rate not yet effective")
}

func TestCalculate_RoundsToCents(t *testing.T) {
	f := newFixture(t)
	f.db.state.rates[0].Amount = 99.99
	f.db.state.promotions[promoCode].DiscountPercentage = 15

	amount, err := f.pricing().Calculate(context.Background(), day(1), day(4), testPlate, strPtr(promoCode))
	require.NoError(t, err)
	assert.Equal(t, 254.97, amount)
}
