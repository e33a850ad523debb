package repository

import (
	"context"
	"errors"
	"fmt"

	"sigac-rental/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Vehicle     VehicleRepository
	DailyRate   DailyRateRepository
	Promotion   PromotionRepository
	Reservation ReservationRepository
	Payment     PaymentRepository
	Maintenance MaintenanceRepository
	Dashboard   DashboardRepository
	Token       TokenRepository
	Transactor  Transactor
}

func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	repo := newQuerierRepository(db, log)
	repo.Token = NewTokenRepository(rdb, log)
	repo.Transactor = NewTransactor(db, repo.Token, log)
	return repo
}

func newQuerierRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Vehicle:     NewVehicleRepository(db, log),
		DailyRate:   NewDailyRateRepository(db, log),
		Promotion:   NewPromotionRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
		Maintenance: NewMaintenanceRepository(db, log),
		Dashboard:   NewDashboardRepository(db, log),
	}
}

// WithinTx runs fn against repositories bound to a single database transaction.
func (r *Repository) WithinTx(ctx context.Context, fn func(repo *Repository) error) error {
	return r.Transactor.WithinTx(ctx, fn)
}

// Transactor commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(repo *Repository) error) error
}

type pgxTransactor struct {
	db    database.PgxIface
	token TokenRepository
	log   *zap.Logger
}

func NewTransactor(db database.PgxIface, token TokenRepository, log *zap.Logger) Transactor {
	return &pgxTransactor{
		db:    db,
		token: token,
		log:   log.With(zap.String("repository", "transactor")),
	}
}

func (t *pgxTransactor) WithinTx(ctx context.Context, fn func(repo *Repository) error) (err error) {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		t.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				t.log.Warn("Failed to roll back transaction", zap.Error(rbErr))
			}
		}
	}()

	txRepo := newQuerierRepository(tx, t.log)
	txRepo.Token = t.token
	txRepo.Transactor = nestedTransactor{repo: txRepo}

	if err = fn(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		t.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// nestedTransactor joins the surrounding transaction.
type nestedTransactor struct {
	repo *Repository
}

func (n nestedTransactor) WithinTx(_ context.Context, fn func(repo *Repository) error) error {
	return fn(n.repo)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
