package usecase

import (
	"context"
	"strings"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/dto/response"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetByCPF(ctx context.Context, cpf string) (*response.UserResponse, error)
	List(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	Update(ctx context.Context, cpf string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actor Actor, cpf string) error
}

type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	now        func() time.Time
	log        *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: config.Security.BcryptCost,
		now:        time.Now,
		log:        log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cpf := utils.NormalizeCPF(req.CPF)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := ensureUserIsNew(ctx, s.userRepo, cpf, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &entity.User{
		CPF:           cpf,
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		Phone:         trimmedPtr(req.Phone),
		Role:          entity.UserRole(req.Role),
		DriverLicense: trimmedPtr(req.DriverLicense),
		Position:      trimmedPtr(req.Position),
		IsActive:      true,
	}
	user.Touch(s.now())

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapInternal("create user", err)
	}

	s.log.Info("User created", zap.String("cpf", cpf), zap.String("role", req.Role))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) GetByCPF(ctx context.Context, cpf string) (*response.UserResponse, error) {
	user, err := s.find(ctx, cpf)
	if err != nil {
		return nil, err
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) List(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var filter entity.UserFilter
	if req.Role != nil {
		role := entity.UserRole(*req.Role)
		filter.Role = &role
	}
	filter.Search = trimmedPtr(req.Search)

	users, err := s.userRepo.FindAll(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list users", err)
	}
	total, err := s.userRepo.CountAll(ctx, filter)
	if err != nil {
		return nil, wrapInternal("count users", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, response.UserToResponse(u))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *userService) Update(ctx context.Context, cpf string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.find(ctx, cpf)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = hash
	}
	if req.Phone != nil {
		user.Phone = trimmedPtr(req.Phone)
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.DriverLicense != nil {
		user.DriverLicense = trimmedPtr(req.DriverLicense)
	}
	if req.Position != nil {
		user.Position = trimmedPtr(req.Position)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, wrapInternal("update user", err)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, cpf string) error {
	cpf = utils.NormalizeCPF(cpf)
	if cpf == actor.CPF {
		return apperror.Validation("you cannot delete your own account", nil)
	}
	if err := s.userRepo.Delete(ctx, cpf); err != nil {
		return wrapInternal("delete user", err)
	}

	s.log.Info("User deleted", zap.String("cpf", cpf), zap.String("by", actor.CPF))
	return nil
}

func (s *userService) find(ctx context.Context, cpf string) (*entity.User, error) {
	cpf = utils.NormalizeCPF(cpf)
	user, err := s.userRepo.FindByCPF(ctx, cpf)
	if err != nil {
		return nil, wrapInternal("find user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", cpf)
	}
	return user, nil
}
