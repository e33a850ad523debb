package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenRepository tracks issued refresh tokens by their JWT id so they can be revoked.
type TokenRepository interface {
	Store(ctx context.Context, jti, cpf string, ttl time.Duration) error
	// Owner returns the CPF the token was issued to, or "" when it is unknown, expired or revoked.
	Owner(ctx context.Context, jti string) (string, error)
	Revoke(ctx context.Context, jti string) error
	Ping(ctx context.Context) error
}

type tokenRepository struct {
	client *redis.Client
	log    *zap.Logger
}

func NewTokenRepository(client *redis.Client, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		client: client,
		log:    log.With(zap.String("repository", "token")),
	}
}

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (r *tokenRepository) Store(ctx context.Context, jti, cpf string, ttl time.Duration) error {
	if err := r.client.Set(ctx, refreshKey(jti), cpf, ttl).Err(); err != nil {
		r.log.Error("Failed to store refresh token", zap.Error(err), zap.String("cpf", cpf))
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) Owner(ctx context.Context, jti string) (string, error) {
	cpf, err := r.client.Get(ctx, refreshKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		r.log.Error("Failed to read refresh token", zap.Error(err))
		return "", fmt.Errorf("read refresh token: %w", err)
	}
	return cpf, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string) error {
	if err := r.client.Del(ctx, refreshKey(jti)).Err(); err != nil {
		r.log.Error("Failed to revoke refresh token", zap.Error(err))
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *tokenRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
