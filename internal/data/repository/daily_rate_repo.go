package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type DailyRateRepository interface {
	Create(ctx context.Context, rate *entity.DailyRate) error
	// FindMostRecent returns the rate with the latest effective_from not after asOf.
	FindMostRecent(ctx context.Context, plate string, asOf time.Time) (*entity.DailyRate, error)
	FindByVehicle(ctx context.Context, plate string) ([]*entity.DailyRate, error)
}

type dailyRateRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDailyRateRepository(db database.Querier, log *zap.Logger) DailyRateRepository {
	return &dailyRateRepository{
		db:  db,
		log: log.With(zap.String("repository", "daily_rate")),
	}
}

func (r *dailyRateRepository) Create(ctx context.Context, rate *entity.DailyRate) error {
	query := `
		INSERT INTO daily_rates (id, vehicle_plate, amount, effective_from, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, rate.ID, rate.VehiclePlate, rate.Amount, rate.EffectiveFrom, rate.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create daily rate", zap.Error(err), zap.String("plate", rate.VehiclePlate))
		return fmt.Errorf("create daily rate for %s: %w", rate.VehiclePlate, err)
	}
	return nil
}

func (r *dailyRateRepository) FindMostRecent(ctx context.Context, plate string, asOf time.Time) (*entity.DailyRate, error) {
	query := `
		SELECT id, vehicle_plate, amount, effective_from, created_at
		FROM daily_rates
		WHERE vehicle_plate = $1 AND effective_from <= $2
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1
	`

	var rate entity.DailyRate
	err := r.db.QueryRow(ctx, query, plate, asOf).Scan(
		&rate.ID,
		&rate.VehiclePlate,
		&rate.Amount,
		&rate.EffectiveFrom,
		&rate.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find daily rate",
			zap.Error(err),
			zap.String("plate", plate),
			zap.Time("as_of", asOf),
		)
		return nil, fmt.Errorf("find daily rate for %s: %w", plate, err)
	}

	return &rate, nil
}

func (r *dailyRateRepository) FindByVehicle(ctx context.Context, plate string) ([]*entity.DailyRate, error) {
	query := `
		SELECT id, vehicle_plate, amount, effective_from, created_at
		FROM daily_rates
		WHERE vehicle_plate = $1
		ORDER BY effective_from DESC
	`

	rows, err := r.db.Query(ctx, query, plate)
	if err != nil {
		r.log.Error("Failed to list daily rates", zap.Error(err), zap.String("plate", plate))
		return nil, fmt.Errorf("list daily rates for %s: %w", plate, err)
	}
	defer rows.Close()

	var rates []*entity.DailyRate
	for rows.Next() {
		var rate entity.DailyRate
		if err := rows.Scan(&rate.ID, &rate.VehiclePlate, &rate.Amount, &rate.EffectiveFrom, &rate.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan daily rate: %w", err)
		}
		rates = append(rates, &rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily rates: %w", err)
	}

	return rates, nil
}
