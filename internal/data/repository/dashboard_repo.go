package repository

import (
	"context"
	"fmt"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/database"

	"go.uber.org/zap"
)

type DashboardRepository interface {
	// Stats aggregates fleet, reservation and revenue figures. Period-bound figures use [from, to).
	Stats(ctx context.Context, from, to time.Time) (*entity.DashboardStats, error)
}

type dashboardRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewDashboardRepository(db database.Querier, log *zap.Logger) DashboardRepository {
	return &dashboardRepository{
		db:  db,
		log: log.With(zap.String("repository", "dashboard")),
	}
}

func (r *dashboardRepository) Stats(ctx context.Context, from, to time.Time) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		From:                 from,
		To:                   to,
		VehiclesByStatus:     map[entity.VehicleStatus]int64{},
		ReservationsByStatus: map[entity.ReservationStatus]int64{},
	}

	if err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM vehicles GROUP BY status`, nil,
		func(status string, n int64) { stats.VehiclesByStatus[entity.VehicleStatus(status)] = n },
	); err != nil {
		return nil, err
	}

	if err := r.groupCount(ctx, `
		SELECT status, COUNT(*) FROM reservations
		WHERE reservation_date >= $1 AND reservation_date < $2
		GROUP BY status`, []any{from, to},
		func(status string, n int64) { stats.ReservationsByStatus[entity.ReservationStatus(status)] = n },
	); err != nil {
		return nil, err
	}

	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM payments
		WHERE status = 'PAID' AND paid_at >= $1 AND paid_at < $2`, from, to,
	).Scan(&stats.Revenue, &stats.PaidPayments)
	if err != nil {
		r.log.Error("Failed to aggregate revenue", zap.Error(err))
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM promotions
		WHERE status = 'ACTIVE' AND start_date < $2 AND end_date >= $1`, from, to,
	).Scan(&stats.ActivePromotions)
	if err != nil {
		r.log.Error("Failed to count active promotions", zap.Error(err))
		return nil, fmt.Errorf("count active promotions: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('SCHEDULED', 'IN_PROGRESS')),
			COALESCE(SUM(cost) FILTER (WHERE status = 'COMPLETED' AND completed_date >= $1 AND completed_date < $2), 0)
		FROM maintenances`, from, to,
	).Scan(&stats.OpenMaintenances, &stats.MaintenanceCost)
	if err != nil {
		r.log.Error("Failed to aggregate maintenances", zap.Error(err))
		return nil, fmt.Errorf("aggregate maintenances: %w", err)
	}

	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'CLIENT' AND is_active`).Scan(&stats.TotalClients)
	if err != nil {
		r.log.Error("Failed to count clients", zap.Error(err))
		return nil, fmt.Errorf("count clients: %w", err)
	}

	return stats, nil
}

func (r *dashboardRepository) groupCount(ctx context.Context, query string, args []any, set func(string, int64)) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to run grouped count", zap.Error(err))
		return fmt.Errorf("grouped count: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return fmt.Errorf("scan grouped count: %w", err)
		}
		set(status, n)
	}
	return rows.Err()
}
