package repository

import (
	"context"
	"errors"
	"fmt"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromotionRepository interface {
	Create(ctx context.Context, promotion *entity.Promotion) error
	FindByCode(ctx context.Context, code string) (*entity.Promotion, error)
	FindAll(ctx context.Context, status *entity.PromotionStatus, offset, limit int) ([]*entity.Promotion, error)
	CountAll(ctx context.Context, status *entity.PromotionStatus) (int64, error)
	Update(ctx context.Context, promotion *entity.Promotion) error
	Delete(ctx context.Context, code string) error
}

type promotionRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPromotionRepository(db database.Querier, log *zap.Logger) PromotionRepository {
	return &promotionRepository{
		db:  db,
		log: log.With(zap.String("repository", "promotion")),
	}
}

const promotionColumns = `code, description, discount_percentage, start_date, end_date, status, created_at, updated_at`

func scanPromotion(row pgx.Row) (*entity.Promotion, error) {
	var p entity.Promotion
	err := row.Scan(
		&p.Code,
		&p.Description,
		&p.DiscountPercentage,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *promotionRepository) Create(ctx context.Context, p *entity.Promotion) error {
	query := `
		INSERT INTO promotions (code, description, discount_percentage, start_date, end_date,
		                        status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		p.Code,
		p.Description,
		p.DiscountPercentage,
		p.StartDate,
		p.EndDate,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.Conflict(fmt.Sprintf("promotion %s already exists", p.Code))
	}
	if err != nil {
		r.log.Error("Failed to create promotion", zap.Error(err), zap.String("code", p.Code))
		return fmt.Errorf("create promotion %s: %w", p.Code, err)
	}
	return nil
}

func (r *promotionRepository) FindByCode(ctx context.Context, code string) (*entity.Promotion, error) {
	promotion, err := scanPromotion(r.db.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promotion", zap.Error(err), zap.String("code", code))
		return nil, fmt.Errorf("find promotion %s: %w", code, err)
	}
	return promotion, nil
}

func (r *promotionRepository) FindAll(ctx context.Context, status *entity.PromotionStatus, offset, limit int) ([]*entity.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status = $1`
	}
	query += fmt.Sprintf(` ORDER BY start_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list promotions", zap.Error(err))
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*entity.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotions: %w", err)
	}

	return promotions, nil
}

func (r *promotionRepository) CountAll(ctx context.Context, status *entity.PromotionStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM promotions`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count promotions", zap.Error(err))
		return 0, fmt.Errorf("count promotions: %w", err)
	}
	return total, nil
}

func (r *promotionRepository) Update(ctx context.Context, p *entity.Promotion) error {
	query := `
		UPDATE promotions
		SET description = $2, discount_percentage = $3, start_date = $4, end_date = $5,
		    status = $6, updated_at = $7
		WHERE code = $1
	`

	result, err := r.db.Exec(ctx, query,
		p.Code,
		p.Description,
		p.DiscountPercentage,
		p.StartDate,
		p.EndDate,
		p.Status,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update promotion", zap.Error(err), zap.String("code", p.Code))
		return fmt.Errorf("update promotion %s: %w", p.Code, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("promotion", p.Code)
	}
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM promotions WHERE code = $1`, code)
	if err != nil {
		r.log.Error("Failed to delete promotion", zap.Error(err), zap.String("code", code))
		return fmt.Errorf("delete promotion %s: %w", code, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("promotion", code)
	}
	return nil
}
