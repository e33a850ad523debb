package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ReservationDetail, error)
	FindAll(ctx context.Context, filter entity.ReservationFilter, offset, limit int) ([]*entity.ReservationDetail, error)
	CountAll(ctx context.Context, filter entity.ReservationFilter) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountConflicting counts blocking reservations on plate whose period overlaps [start, end),
	// ignoring excludeID when it is set.
	CountConflicting(ctx context.Context, plate string, start, end time.Time, excludeID *uuid.UUID) (int64, error)
}

type reservationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationRepository(db database.Querier, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `r.id, r.start_date, r.end_date, r.reservation_date, r.status, r.promotion_code,
		       r.client_user_cpf, r.employee_user_cpf, r.vehicle_plate, r.updated_at`

const reservationDetailFrom = `
		FROM reservations r
		JOIN users c ON c.cpf = r.client_user_cpf
		LEFT JOIN users e ON e.cpf = r.employee_user_cpf
		JOIN vehicles v ON v.plate = r.vehicle_plate`

func reservationScanTargets(res *entity.Reservation) []any {
	return []any{
		&res.ID,
		&res.StartDate,
		&res.EndDate,
		&res.ReservationDate,
		&res.Status,
		&res.PromotionCode,
		&res.ClientUserCPF,
		&res.EmployeeUserCPF,
		&res.VehiclePlate,
		&res.UpdatedAt,
	}
}

func scanReservationDetail(row pgx.Row) (*entity.ReservationDetail, error) {
	var d entity.ReservationDetail
	targets := append(reservationScanTargets(&d.Reservation),
		&d.ClientName,
		&d.EmployeeName,
		&d.VehicleBrand,
		&d.VehicleModel,
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, start_date, end_date, reservation_date, status, promotion_code,
		                          client_user_cpf, employee_user_cpf, vehicle_plate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		res.ID,
		res.StartDate,
		res.EndDate,
		res.ReservationDate,
		res.Status,
		res.PromotionCode,
		res.ClientUserCPF,
		res.EmployeeUserCPF,
		res.VehiclePlate,
		res.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("vehicle_plate", res.VehiclePlate),
			zap.String("client_cpf", res.ClientUserCPF),
		)
		return fmt.Errorf("create reservation for %s: %w", res.VehiclePlate, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = $1`

	var res entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(reservationScanTargets(&res)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation", zap.Error(err), zap.String("reservation_id", id.String()))
		return nil, fmt.Errorf("find reservation %s: %w", id, err)
	}

	return &res, nil
}

func (r *reservationRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ReservationDetail, error) {
	query := `SELECT ` + reservationColumns + `, c.name, e.name, v.brand, v.model` +
		reservationDetailFrom + ` WHERE r.id = $1`

	detail, err := scanReservationDetail(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation detail", zap.Error(err), zap.String("reservation_id", id.String()))
		return nil, fmt.Errorf("find reservation detail %s: %w", id, err)
	}

	return detail, nil
}

func reservationFilterClause(filter entity.ReservationFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.ClientUserCPF != nil {
		args = append(args, *filter.ClientUserCPF)
		conds = append(conds, fmt.Sprintf("r.client_user_cpf = $%d", len(args)))
	}
	if filter.VehiclePlate != nil {
		args = append(args, *filter.VehiclePlate)
		conds = append(conds, fmt.Sprintf("r.vehicle_plate = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *reservationRepository) FindAll(ctx context.Context, filter entity.ReservationFilter, offset, limit int) ([]*entity.ReservationDetail, error) {
	where, args := reservationFilterClause(filter)
	query := `SELECT ` + reservationColumns + `, c.name, e.name, v.brand, v.model` +
		reservationDetailFrom + where +
		fmt.Sprintf(` ORDER BY r.start_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list reservations", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.ReservationDetail
	for rows.Next() {
		detail, err := scanReservationDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}

	r.log.Debug("Reservations found", zap.Int("count", len(reservations)), zap.Int("offset", offset))
	return reservations, nil
}

func (r *reservationRepository) CountAll(ctx context.Context, filter entity.ReservationFilter) (int64, error) {
	where, args := reservationFilterClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations r`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return total, nil
}

func (r *reservationRepository) Update(ctx context.Context, res *entity.Reservation) error {
	// client_user_cpf and reservation_date are immutable and deliberately absent here.
	query := `
		UPDATE reservations
		SET start_date = $2, end_date = $3, status = $4, promotion_code = $5,
		    employee_user_cpf = $6, vehicle_plate = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		res.ID,
		res.StartDate,
		res.EndDate,
		res.Status,
		res.PromotionCode,
		res.EmployeeUserCPF,
		res.VehiclePlate,
		res.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update reservation", zap.Error(err), zap.String("reservation_id", res.ID.String()))
		return fmt.Errorf("update reservation %s: %w", res.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("reservation", res.ID)
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE reservations SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, at,
	)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("reservation", id)
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation", zap.Error(err), zap.String("reservation_id", id.String()))
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("reservation", id)
	}

	return nil
}

func (r *reservationRepository) CountConflicting(ctx context.Context, plate string, start, end time.Time, excludeID *uuid.UUID) (int64, error) {
	blocking := entity.BlockingReservationStatuses()
	statuses := make([]string, len(blocking))
	for i, s := range blocking {
		statuses[i] = string(s)
	}

	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE vehicle_plate = $1
		  AND status = ANY($2)
		  AND start_date < $4
		  AND $3 < end_date
		  AND ($5::uuid IS NULL OR id <> $5::uuid)
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, plate, statuses, start, end, excludeID).Scan(&count); err != nil {
		r.log.Error("Failed to count conflicting reservations",
			zap.Error(err),
			zap.String("vehicle_plate", plate),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return 0, fmt.Errorf("count conflicting reservations for %s: %w", plate, err)
	}

	return count, nil
}
