package usecase

import (
	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/events"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Vehicle     VehicleService
	Promotion   PromotionService
	Reservation ReservationService
	Payment     PaymentService
	Maintenance MaintenanceService
	Dashboard   DashboardService
}

// NewService builds every service and subscribes the reservation flow to payment events.
func NewService(repo *repository.Repository, tokens *utils.TokenManager, dispatcher events.Dispatcher, config *utils.Config, log *zap.Logger) *Service {
	pricing := NewPricingCalculator(repo.DailyRate, repo.Promotion, log)
	reservation := NewReservationService(repo, log)

	dispatcher.Subscribe(events.EventPaymentSettled, reservation.HandlePaymentSettled)
	dispatcher.Subscribe(events.EventPaymentCanceled, reservation.HandlePaymentCanceled)

	return &Service{
		Auth:        NewAuthService(repo, tokens, config, log),
		User:        NewUserService(repo.User, config, log),
		Vehicle:     NewVehicleService(repo, log),
		Promotion:   NewPromotionService(repo.Promotion, log),
		Reservation: reservation,
		Payment:     NewPaymentService(repo, pricing, dispatcher, log),
		Maintenance: NewMaintenanceService(repo, log),
		Dashboard:   NewDashboardService(repo.Dashboard, log),
	}
}
