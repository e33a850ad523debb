package utils

import (
	"context"
)

type contextKey string

const (
	UserCPFKey contextKey = "user_cpf"
	RoleKey    contextKey = "role"
)

func GetUserCPFFromContext(ctx context.Context) (string, bool) {
	cpf, ok := ctx.Value(UserCPFKey).(string)
	if !ok || cpf == "" {
		return "", false
	}
	return cpf, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetUserContext(ctx context.Context, cpf string, role string) context.Context {
	ctx = context.WithValue(ctx, UserCPFKey, cpf)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
