// internal/wire/wire.go
package wire

import (
	"net/http"

	"sigac-rental/internal/adaptor"
	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/events"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/middleware"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// guards are the auth middlewares shared by every route group.
type guards struct {
	auth  func(http.Handler) http.Handler
	staff func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes. db is only probed by the health check.
func Wiring(repo *repository.Repository, db adaptor.Pinger, config *utils.Config, logger *zap.Logger) *App {
	tokens := utils.NewTokenManager(config.JWT)
	dispatcher := events.NewInMemoryDispatcher(logger)

	service := usecase.NewService(repo, tokens, dispatcher, config, logger)
	health := adaptor.NewHealthHandler(map[string]adaptor.Pinger{
		"postgres": db,
		"redis":    repo.Token,
	}, logger)
	handler := adaptor.NewHandler(service, health, config, logger)

	g := guards{
		auth:  middleware.Auth(tokens, logger),
		staff: middleware.RequireRole(logger, string(entity.RoleAdmin), string(entity.RoleEmployee)),
		admin: middleware.RequireRole(logger, string(entity.RoleAdmin)),
	}

	return &App{
		Router: setupRouter(handler, g, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, g guards, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	if timeout := config.App.RequestTimeout(); timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	r.Get("/health", handler.Health.Health)

	wireAuth(r, handler.Auth, g)
	wireUser(r, handler.User, g)
	wireVehicle(r, handler.Vehicle, g)
	wirePromotion(r, handler.Promotion, g)
	wireReservation(r, handler.Reservation, g)
	wirePayment(r, handler.Payment, g)
	wireMaintenance(r, handler.Maintenance, g)
	wireDashboard(r, handler.Dashboard, g)

	return r
}
