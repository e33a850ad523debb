package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	// LockByPlate reads the vehicle with a row lock held until the surrounding transaction ends.
	LockByPlate(ctx context.Context, plate string) (*entity.Vehicle, error)
	FindAll(ctx context.Context, status *entity.VehicleStatus, offset, limit int) ([]*entity.Vehicle, error)
	CountAll(ctx context.Context, status *entity.VehicleStatus) (int64, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	UpdateStatus(ctx context.Context, plate string, status entity.VehicleStatus, at time.Time) error
	Delete(ctx context.Context, plate string) error
}

type vehicleRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewVehicleRepository(db database.Querier, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log.With(zap.String("repository", "vehicle")),
	}
}

const vehicleColumns = `plate, brand, model, year, color, category, status, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(
		&v.Plate,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.Color,
		&v.Category,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (plate, brand, model, year, color, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		vehicle.Plate,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Category,
		vehicle.Status,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.Conflict(fmt.Sprintf("vehicle %s already exists", vehicle.Plate))
	}
	if err != nil {
		r.log.Error("Failed to create vehicle", zap.Error(err), zap.String("plate", vehicle.Plate))
		return fmt.Errorf("create vehicle %s: %w", vehicle.Plate, err)
	}

	return nil
}

func (r *vehicleRepository) FindByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return r.findOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE plate = $1`, plate)
}

func (r *vehicleRepository) LockByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	return r.findOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE plate = $1 FOR UPDATE`, plate)
}

func (r *vehicleRepository) findOne(ctx context.Context, query, plate string) (*entity.Vehicle, error) {
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, plate))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vehicle", zap.Error(err), zap.String("plate", plate))
		return nil, fmt.Errorf("find vehicle %s: %w", plate, err)
	}
	return vehicle, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, status *entity.VehicleStatus, offset, limit int) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status = $1`
	}
	query += fmt.Sprintf(` ORDER BY brand, model, plate LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list vehicles", zap.Error(err))
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			r.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *vehicleRepository) CountAll(ctx context.Context, status *entity.VehicleStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count vehicles", zap.Error(err))
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return total, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET brand = $2, model = $3, year = $4, color = $5, category = $6, status = $7, updated_at = $8
		WHERE plate = $1
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.Plate,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.Category,
		vehicle.Status,
		vehicle.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update vehicle", zap.Error(err), zap.String("plate", vehicle.Plate))
		return fmt.Errorf("update vehicle %s: %w", vehicle.Plate, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("vehicle", vehicle.Plate)
	}

	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, plate string, status entity.VehicleStatus, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE vehicles SET status = $2, updated_at = $3 WHERE plate = $1`,
		plate, status, at,
	)
	if err != nil {
		r.log.Error("Failed to update vehicle status",
			zap.Error(err),
			zap.String("plate", plate),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update vehicle %s status: %w", plate, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("vehicle", plate)
	}

	r.log.Debug("Vehicle status updated", zap.String("plate", plate), zap.String("status", string(status)))
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, plate string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE plate = $1`, plate)
	if isForeignKeyViolation(err) {
		return apperror.Conflict(fmt.Sprintf("vehicle %s still has reservations", plate))
	}
	if err != nil {
		r.log.Error("Failed to delete vehicle", zap.Error(err), zap.String("plate", plate))
		return fmt.Errorf("delete vehicle %s: %w", plate, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("vehicle", plate)
	}

	return nil
}
