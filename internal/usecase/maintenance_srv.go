package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sigac-rental/internal/data/entity"
	"sigac-rental/internal/data/repository"
	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/dto/response"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaintenanceService interface {
	Create(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error)
	GetByID(ctx context.Context, id string) (*response.MaintenanceResponse, error)
	List(ctx context.Context, req *request.MaintenanceListRequest) (*response.PaginatedResponse[response.MaintenanceResponse], error)
	Start(ctx context.Context, id string) (*response.MaintenanceResponse, error)
	Complete(ctx context.Context, id string, req *request.CompleteMaintenanceRequest) (*response.MaintenanceResponse, error)
	Cancel(ctx context.Context, id string) (*response.MaintenanceResponse, error)
}

type maintenanceService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewMaintenanceService(repo *repository.Repository, log *zap.Logger) MaintenanceService {
	return newMaintenanceService(repo, time.Now, log)
}

func newMaintenanceService(repo *repository.Repository, now func() time.Time, log *zap.Logger) *maintenanceService {
	return &maintenanceService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "maintenance")),
	}
}

func (s *maintenanceService) Create(ctx context.Context, req *request.CreateMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	plate := utils.NormalizePlate(req.VehiclePlate)
	vehicle, err := s.repo.Vehicle.FindByPlate(ctx, plate)
	if err != nil {
		return nil, wrapInternal("find vehicle", err)
	}
	if vehicle == nil {
		return nil, apperror.NotFound("vehicle", plate)
	}
	open, err := s.repo.Maintenance.CountOpenByVehicle(ctx, vehicle.Plate)
	if err != nil {
		return nil, wrapInternal("count open maintenances", err)
	}
	if open > 0 {
		return nil, apperror.Conflict("vehicle already has an open maintenance")
	}

	m := &entity.Maintenance{
		ID:            uuid.New(),
		VehiclePlate:  vehicle.Plate,
		Description:   strings.TrimSpace(req.Description),
		Cost:          utils.RoundMoney(req.Cost),
		ScheduledDate: req.ScheduledDate,
		Status:        entity.MaintenanceStatusScheduled,
	}
	m.Touch(s.now())

	if err := s.repo.Maintenance.Create(ctx, m); err != nil {
		return nil, wrapInternal("create maintenance", err)
	}

	s.log.Info("Maintenance scheduled", zap.String("maintenance_id", m.ID.String()), zap.String("plate", m.VehiclePlate))
	resp := response.MaintenanceToResponse(m)
	return &resp, nil
}

func (s *maintenanceService) GetByID(ctx context.Context, id string) (*response.MaintenanceResponse, error) {
	maintenanceID, err := parseID("maintenance", id)
	if err != nil {
		return nil, err
	}
	m, err := s.find(ctx, s.repo, maintenanceID)
	if err != nil {
		return nil, err
	}
	resp := response.MaintenanceToResponse(m)
	return &resp, nil
}

func (s *maintenanceService) List(ctx context.Context, req *request.MaintenanceListRequest) (*response.PaginatedResponse[response.MaintenanceResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var filter entity.MaintenanceFilter
	if req.VehiclePlate != nil {
		plate := utils.NormalizePlate(*req.VehiclePlate)
		filter.VehiclePlate = &plate
	}
	if req.Status != nil {
		st := entity.MaintenanceStatus(*req.Status)
		filter.Status = &st
	}

	records, err := s.repo.Maintenance.FindAll(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list maintenances", err)
	}
	total, err := s.repo.Maintenance.CountAll(ctx, filter)
	if err != nil {
		return nil, wrapInternal("count maintenances", err)
	}

	items := make([]response.MaintenanceResponse, 0, len(records))
	for _, m := range records {
		items = append(items, response.MaintenanceToResponse(m))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// Start puts the vehicle into MANUTENCAO. A vehicle that is out on a rental cannot be taken.
func (s *maintenanceService) Start(ctx context.Context, id string) (*response.MaintenanceResponse, error) {
	return s.transition(ctx, id, entity.MaintenanceStatusInProgress, func(tx *repository.Repository, m *entity.Maintenance, now time.Time) error {
		vehicle, err := tx.Vehicle.LockByPlate(ctx, m.VehiclePlate)
		if err != nil {
			return wrapInternal("lock vehicle", err)
		}
		if vehicle == nil {
			return apperror.NotFound("vehicle", m.VehiclePlate)
		}
		if vehicle.Status == entity.VehicleStatusUnavailable {
			return apperror.Conflict("vehicle is currently rented")
		}
		return s.setVehicle(ctx, tx, m.VehiclePlate, entity.VehicleStatusMaintenance, now)
	})
}

// Complete closes the record and releases the vehicle.
func (s *maintenanceService) Complete(ctx context.Context, id string, req *request.CompleteMaintenanceRequest) (*response.MaintenanceResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, entity.MaintenanceStatusCompleted, func(tx *repository.Repository, m *entity.Maintenance, now time.Time) error {
		m.CompletedDate = &now
		if req.Cost != nil {
			m.Cost = utils.RoundMoney(*req.Cost)
		}
		if _, err := tx.Vehicle.LockByPlate(ctx, m.VehiclePlate); err != nil {
			return wrapInternal("lock vehicle", err)
		}
		return s.setVehicle(ctx, tx, m.VehiclePlate, entity.VehicleStatusAvailable, now)
	})
}

func (s *maintenanceService) Cancel(ctx context.Context, id string) (*response.MaintenanceResponse, error) {
	return s.transition(ctx, id, entity.MaintenanceStatusCancelled, nil)
}

// transition loads the record, checks the move, runs apply and persists, all in one transaction.
func (s *maintenanceService) transition(
	ctx context.Context,
	id string,
	target entity.MaintenanceStatus,
	apply func(tx *repository.Repository, m *entity.Maintenance, now time.Time) error,
) (*response.MaintenanceResponse, error) {
	maintenanceID, err := parseID("maintenance", id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var result *entity.Maintenance
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		m, err := s.find(ctx, tx, maintenanceID)
		if err != nil {
			return err
		}
		if !m.Status.CanTransitionTo(target) {
			return apperror.InvalidState(fmt.Sprintf("cannot change maintenance status from %s to %s", m.Status, target))
		}

		if apply != nil {
			if err := apply(tx, m, now); err != nil {
				return err
			}
		}
		m.Status = target
		m.UpdatedAt = now

		if err := tx.Maintenance.Update(ctx, m); err != nil {
			return wrapInternal("update maintenance", err)
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Maintenance status changed",
		zap.String("maintenance_id", result.ID.String()),
		zap.String("status", string(target)),
	)
	resp := response.MaintenanceToResponse(result)
	return &resp, nil
}

func (s *maintenanceService) setVehicle(ctx context.Context, tx *repository.Repository, plate string, status entity.VehicleStatus, at time.Time) error {
	if err := tx.Vehicle.UpdateStatus(ctx, plate, status, at); err != nil {
		return wrapInternal("update vehicle status", err)
	}
	return nil
}

func (s *maintenanceService) find(ctx context.Context, repo *repository.Repository, id uuid.UUID) (*entity.Maintenance, error) {
	m, err := repo.Maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, wrapInternal("find maintenance", err)
	}
	if m == nil {
		return nil, apperror.NotFound("maintenance", id)
	}
	return m, nil
}
