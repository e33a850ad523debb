package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Vehicle     *VehicleHandler
	Promotion   *PromotionHandler
	Reservation *ReservationHandler
	Payment     *PaymentHandler
	Maintenance *MaintenanceHandler
	Dashboard   *DashboardHandler
	Health      *HealthHandler
}

func NewHandler(service *usecase.Service, health *HealthHandler, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, config.JWT, log),
		User:        NewUserHandler(service.User, log),
		Vehicle:     NewVehicleHandler(service.Vehicle, log),
		Promotion:   NewPromotionHandler(service.Promotion, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Payment:     NewPaymentHandler(service.Payment, log),
		Maintenance: NewMaintenanceHandler(service.Maintenance, log),
		Dashboard:   NewDashboardHandler(service.Dashboard, log),
		Health:      health,
	}
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation("invalid request body", nil)
	}
	return nil
}

// handleServiceError logs by severity and writes the mapped error response.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed", zap.String("kind", string(appErr.Kind)), zap.Error(err))
	}
	utils.ResponseError(w, err)
}

// actorFrom returns the authenticated caller, writing 401 when there is none.
func actorFrom(w http.ResponseWriter, r *http.Request) (usecase.Actor, bool) {
	actor, ok := usecase.ActorFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return usecase.Actor{}, false
	}
	return actor, true
}

func paginationFrom(r *http.Request) request.PaginatedRequest {
	query := r.URL.Query()
	return request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

// optionalQuery returns nil for an absent or empty query parameter.
func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func optionalDateQuery(r *http.Request, key string) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(v)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date for "+key, map[string]string{key: "must be RFC3339 or YYYY-MM-DD"})
	}
	return t, nil
}
