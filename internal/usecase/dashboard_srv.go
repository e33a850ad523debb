package usecase

import (
	"context"
	"time"

	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/dto/response"
	"sigac-rental/pkg/apperror"

	"go.uber.org/zap"
)

type DashboardService interface {
	Summary(ctx context.Context, req *request.DashboardRequest) (*response.DashboardResponse, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	now           func() time.Time
	log           *zap.Logger
}

func NewDashboardService(dashboardRepo repository.DashboardRepository, log *zap.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		now:           time.Now,
		log:           log.With(zap.String("service", "dashboard")),
	}
}

// Summary defaults to the current month up to now.
func (s *dashboardService) Summary(ctx context.Context, req *request.DashboardRequest) (*response.DashboardResponse, error) {
	now := s.now()
	from, to := req.From, req.To
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	if !from.Before(to) {
		return nil, apperror.Validation("from must be before to", map[string]string{"from": "must be before to"})
	}

	stats, err := s.dashboardRepo.Stats(ctx, from, to)
	if err != nil {
		return nil, wrapInternal("dashboard stats", err)
	}

	resp := response.DashboardToResponse(stats)
	return &resp, nil
}
