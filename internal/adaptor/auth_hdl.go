package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	jwt     utils.JWTConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, jwt utils.JWTConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		jwt:     jwt,
		log:     log,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	h.setSession(w, session)
	utils.ResponseSuccess(w, "Login successful", session.Response)
}

// Refresh handles POST /api/auth/refresh. The refresh token comes from its cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(utils.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		utils.ResponseUnauthorized(w, "Missing refresh token")
		return
	}

	session, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		handleServiceError(h.log, w, err, "refresh token")
		return
	}

	h.setSession(w, session)
	utils.ResponseSuccess(w, "Token refreshed", session.Response)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(utils.RefreshTokenCookie); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			handleServiceError(h.log, w, err, "logout")
			return
		}
	}

	utils.ClearAuthCookie(w, utils.AccessTokenCookie, h.jwt)
	utils.ClearAuthCookie(w, utils.RefreshTokenCookie, h.jwt)
	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	user, err := h.service.Me(r.Context(), actor.CPF)
	if err != nil {
		handleServiceError(h.log, w, err, "get current user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

func (h *AuthHandler) setSession(w http.ResponseWriter, session *usecase.AuthSession) {
	utils.SetAuthCookie(w, utils.AccessTokenCookie, session.Access, h.jwt)
	utils.SetAuthCookie(w, utils.RefreshTokenCookie, session.Refresh, h.jwt)
}
