package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/dto/request"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"github.com/google/uuid"
)

// Actor is the authenticated caller an operation runs on behalf of.
type Actor struct {
	CPF  string
	Role entity.UserRole
}

func (a Actor) IsClient() bool {
	return a.Role == entity.RoleClient
}

// ActorFromContext reads the identity the auth middleware stored on ctx.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	cpf, ok := utils.GetUserCPFFromContext(ctx)
	if !ok {
		return Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(ctx)
	return Actor{CPF: cpf, Role: entity.UserRole(role)}, true
}

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}
	return nil
}

func parseID(resource, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Validation(fmt.Sprintf("invalid %s id: %s", resource, raw), nil)
	}
	return id, nil
}

func normalizePage(p request.PaginatedRequest) request.PaginatedRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = p.Limit()
	return p
}

// wrapInternal leaves typed errors untouched and marks everything else as internal.
func wrapInternal(op string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(fmt.Errorf("%s: %w", op, err))
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
