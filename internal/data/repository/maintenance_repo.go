package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, m *entity.Maintenance) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error)
	FindAll(ctx context.Context, filter entity.MaintenanceFilter, offset, limit int) ([]*entity.Maintenance, error)
	CountAll(ctx context.Context, filter entity.MaintenanceFilter) (int64, error)
	// CountOpenByVehicle counts SCHEDULED and IN_PROGRESS records for plate.
	CountOpenByVehicle(ctx context.Context, plate string) (int64, error)
	Update(ctx context.Context, m *entity.Maintenance) error
}

type maintenanceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMaintenanceRepository(db database.Querier, log *zap.Logger) MaintenanceRepository {
	return &maintenanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "maintenance")),
	}
}

const maintenanceColumns = `id, vehicle_plate, description, cost, scheduled_date, completed_date, status,
		       created_at, updated_at`

func scanMaintenance(row pgx.Row) (*entity.Maintenance, error) {
	var m entity.Maintenance
	err := row.Scan(
		&m.ID,
		&m.VehiclePlate,
		&m.Description,
		&m.Cost,
		&m.ScheduledDate,
		&m.CompletedDate,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *entity.Maintenance) error {
	query := `
		INSERT INTO maintenances (id, vehicle_plate, description, cost, scheduled_date, completed_date,
		                          status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.VehiclePlate,
		m.Description,
		m.Cost,
		m.ScheduledDate,
		m.CompletedDate,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create maintenance", zap.Error(err), zap.String("plate", m.VehiclePlate))
		return fmt.Errorf("create maintenance for %s: %w", m.VehiclePlate, err)
	}
	return nil
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Maintenance, error) {
	m, err := scanMaintenance(r.db.QueryRow(ctx, `SELECT `+maintenanceColumns+` FROM maintenances WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find maintenance", zap.Error(err), zap.String("maintenance_id", id.String()))
		return nil, fmt.Errorf("find maintenance %s: %w", id, err)
	}
	return m, nil
}

func maintenanceFilterClause(filter entity.MaintenanceFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.VehiclePlate != nil {
		args = append(args, *filter.VehiclePlate)
		conds = append(conds, fmt.Sprintf("vehicle_plate = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *maintenanceRepository) FindAll(ctx context.Context, filter entity.MaintenanceFilter, offset, limit int) ([]*entity.Maintenance, error) {
	where, args := maintenanceFilterClause(filter)
	query := `SELECT ` + maintenanceColumns + ` FROM maintenances` + where +
		fmt.Sprintf(` ORDER BY scheduled_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list maintenances", zap.Error(err))
		return nil, fmt.Errorf("list maintenances: %w", err)
	}
	defer rows.Close()

	var items []*entity.Maintenance
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintenances: %w", err)
	}

	return items, nil
}

func (r *maintenanceRepository) CountAll(ctx context.Context, filter entity.MaintenanceFilter) (int64, error) {
	where, args := maintenanceFilterClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM maintenances`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count maintenances", zap.Error(err))
		return 0, fmt.Errorf("count maintenances: %w", err)
	}
	return total, nil
}

func (r *maintenanceRepository) CountOpenByVehicle(ctx context.Context, plate string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM maintenances
		WHERE vehicle_plate = $1 AND status IN ('SCHEDULED', 'IN_PROGRESS')
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, plate).Scan(&total); err != nil {
		r.log.Error("Failed to count open maintenances", zap.Error(err), zap.String("plate", plate))
		return 0, fmt.Errorf("count open maintenances for %s: %w", plate, err)
	}
	return total, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *entity.Maintenance) error {
	query := `
		UPDATE maintenances
		SET description = $2, cost = $3, scheduled_date = $4, completed_date = $5, status = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		m.ID,
		m.Description,
		m.Cost,
		m.ScheduledDate,
		m.CompletedDate,
		m.Status,
		m.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update maintenance", zap.Error(err), zap.String("maintenance_id", m.ID.String()))
		return fmt.Errorf("update maintenance %s: %w", m.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("maintenance", m.ID)
	}
	return nil
}
