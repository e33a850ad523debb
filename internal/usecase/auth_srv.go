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

// AuthSession is a freshly issued token pair. The handler turns it into cookies.
type AuthSession struct {
	Access   utils.IssuedToken
	Refresh  utils.IssuedToken
	Response response.AuthResponse
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*AuthSession, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthSession, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, cpf string) (*response.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	config *utils.Config
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		config: config,
		now:    time.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register creates a CLIENT account. Staff accounts are created through the user admin endpoints.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := validateRequest(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	cpf := utils.NormalizeCPF(req.CPF)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := ensureUserIsNew(ctx, s.repo.User, cpf, email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &entity.User{
		CPF:           cpf,
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  hash,
		Phone:         trimmedPtr(req.Phone),
		Role:          entity.RoleClient,
		DriverLicense: trimmedPtr(req.DriverLicense),
		IsActive:      true,
	}
	user.Touch(s.now())

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, wrapInternal("create user", err)
	}

	s.log.Info("User registered", zap.String("cpf", cpf), zap.String("email", email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*AuthSession, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, wrapInternal("find user", err)
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Info("Login failed", zap.String("email", req.Email))
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("account is inactive")
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("cpf", user.CPF), zap.String("role", string(user.Role)))
	return session, nil
}

// Refresh rotates the refresh token. The presented token is revoked whether or not rotation succeeds.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	if refreshToken == "" {
		return nil, apperror.InvalidAuthToken("missing refresh token")
	}

	claims, err := s.tokens.ParseToken(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil, apperror.InvalidAuthToken("invalid or expired refresh token")
	}

	owner, err := s.repo.Token.Owner(ctx, claims.ID)
	if err != nil {
		return nil, wrapInternal("read refresh token", err)
	}
	if owner == "" || owner != claims.Subject {
		s.log.Warn("Refresh token reuse or revoked token", zap.String("cpf", claims.Subject))
		return nil, apperror.InvalidAuthToken("refresh token has been revoked")
	}
	if err := s.repo.Token.Revoke(ctx, claims.ID); err != nil {
		return nil, wrapInternal("revoke refresh token", err)
	}

	user, err := s.repo.User.FindByCPF(ctx, claims.Subject)
	if err != nil {
		return nil, wrapInternal("find user", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperror.InvalidAuthToken("account no longer active")
	}

	return s.issue(ctx, user)
}

// Logout revokes the refresh token. Unparseable tokens have nothing to revoke.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.ParseToken(refreshToken, utils.RefreshToken)
	if err != nil {
		return nil
	}
	if err := s.repo.Token.Revoke(ctx, claims.ID); err != nil {
		return wrapInternal("revoke refresh token", err)
	}

	s.log.Info("User logged out", zap.String("cpf", claims.Subject))
	return nil
}

func (s *authService) Me(ctx context.Context, cpf string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByCPF(ctx, cpf)
	if err != nil {
		return nil, wrapInternal("find user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", cpf)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) issue(ctx context.Context, user *entity.User) (*AuthSession, error) {
	access, err := s.tokens.GenerateAccessToken(user.CPF, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.CPF, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.repo.Token.Store(ctx, refresh.ID, user.CPF, s.tokens.RefreshTTL()); err != nil {
		return nil, wrapInternal("store refresh token", err)
	}

	return &AuthSession{
		Access:  access,
		Refresh: refresh,
		Response: response.AuthResponse{
			User:             response.UserToResponse(user),
			AccessExpiresAt:  access.ExpiresAt,
			RefreshExpiresAt: refresh.ExpiresAt,
		},
	}, nil
}

func ensureUserIsNew(ctx context.Context, users repository.UserRepository, cpf, email string) error {
	existing, err := users.FindByCPF(ctx, cpf)
	if err != nil {
		return wrapInternal("check cpf", err)
	}
	if existing != nil {
		return apperror.Conflict("CPF already registered")
	}

	existing, err = users.FindByEmail(ctx, email)
	if err != nil {
		return wrapInternal("check email", err)
	}
	if existing != nil {
		return apperror.Conflict("email already registered")
	}
	return nil
}
