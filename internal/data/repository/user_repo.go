package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sigac-rental/internal/data/entity"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByCPF(ctx context.Context, cpf string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, filter entity.UserFilter, offset, limit int) ([]*entity.User, error)
	CountAll(ctx context.Context, filter entity.UserFilter) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, cpf string) error
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `cpf, name, email, password_hash, phone, role, driver_license, position,
		       is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.CPF,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.DriverLicense,
		&user.Position,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (cpf, name, email, password_hash, phone, role, driver_license,
		                   position, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		user.CPF,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.DriverLicense,
		user.Position,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.Conflict("a user with this CPF or email already exists")
	}
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) FindByCPF(ctx context.Context, cpf string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cpf = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, cpf))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by CPF", zap.Error(err), zap.String("cpf", cpf))
		return nil, fmt.Errorf("find user %s: %w", cpf, err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func userFilterClause(filter entity.UserFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Role != nil {
		args = append(args, *filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+strings.ToLower(*filter.Search)+"%")
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *userRepository) FindAll(ctx context.Context, filter entity.UserFilter, offset, limit int) ([]*entity.User, error) {
	where, args := userFilterClause(filter)
	query := fmt.Sprintf(`SELECT %s FROM users%s ORDER BY name LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *userRepository) CountAll(ctx context.Context, filter entity.UserFilter) (int64, error) {
	where, args := userFilterClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, phone = $5, role = $6,
		    driver_license = $7, position = $8, is_active = $9, updated_at = $10
		WHERE cpf = $1
	`

	result, err := r.db.Exec(ctx, query,
		user.CPF,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.DriverLicense,
		user.Position,
		user.IsActive,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperror.Conflict("email already in use")
	}
	if err != nil {
		r.log.Error("Failed to update user", zap.Error(err), zap.String("cpf", user.CPF))
		return fmt.Errorf("update user %s: %w", user.CPF, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("user", user.CPF)
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, cpf string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE cpf = $1`, cpf)
	if isForeignKeyViolation(err) {
		return apperror.Conflict("user still has reservations")
	}
	if err != nil {
		r.log.Error("Failed to delete user", zap.Error(err), zap.String("cpf", cpf))
		return fmt.Errorf("delete user %s: %w", cpf, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound("user", cpf)
	}

	return nil
}
