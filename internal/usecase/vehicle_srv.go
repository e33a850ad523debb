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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleService interface {
	Create(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	GetByPlate(ctx context.Context, plate string) (*response.VehicleResponse, error)
	List(ctx context.Context, req *request.VehicleListRequest) (*response.PaginatedResponse[response.VehicleResponse], error)
	Update(ctx context.Context, plate string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	UpdateStatus(ctx context.Context, plate string, req *request.UpdateVehicleStatusRequest) (*response.VehicleResponse, error)
	Delete(ctx context.Context, plate string) error

	AddDailyRate(ctx context.Context, plate string, req *request.CreateDailyRateRequest) (*response.DailyRateResponse, error)
	ListDailyRates(ctx context.Context, plate string) ([]response.DailyRateResponse, error)
}

type vehicleService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

// Create registers a vehicle, optionally with its first daily rate, in one transaction.
func (s *vehicleService) Create(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	vehicle := &entity.Vehicle{
		Plate:    utils.NormalizePlate(req.Plate),
		Brand:    strings.TrimSpace(req.Brand),
		Model:    strings.TrimSpace(req.Model),
		Year:     req.Year,
		Color:    strings.TrimSpace(req.Color),
		Category: strings.ToUpper(strings.TrimSpace(req.Category)),
		Status:   entity.VehicleStatusAvailable,
	}
	vehicle.Touch(now)

	var rate *entity.DailyRate
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Vehicle.Create(ctx, vehicle); err != nil {
			return wrapInternal("create vehicle", err)
		}
		if req.DailyRate == nil {
			return nil
		}
		rate = &entity.DailyRate{
			ID:            uuid.New(),
			VehiclePlate:  vehicle.Plate,
			Amount:        utils.RoundMoney(*req.DailyRate),
			EffectiveFrom: now,
			CreatedAt:     now,
		}
		if err := tx.DailyRate.Create(ctx, rate); err != nil {
			return wrapInternal("create daily rate", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Vehicle created", zap.String("plate", vehicle.Plate))
	resp := response.VehicleToResponse(vehicle, rate)
	return &resp, nil
}

func (s *vehicleService) GetByPlate(ctx context.Context, plate string) (*response.VehicleResponse, error) {
	vehicle, err := s.find(ctx, plate)
	if err != nil {
		return nil, err
	}

	rate, err := s.repo.DailyRate.FindMostRecent(ctx, vehicle.Plate, s.now())
	if err != nil {
		return nil, wrapInternal("find daily rate", err)
	}

	resp := response.VehicleToResponse(vehicle, rate)
	return &resp, nil
}

func (s *vehicleService) List(ctx context.Context, req *request.VehicleListRequest) (*response.PaginatedResponse[response.VehicleResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var status *entity.VehicleStatus
	if req.Status != nil {
		st := entity.VehicleStatus(*req.Status)
		status = &st
	}

	vehicles, err := s.repo.Vehicle.FindAll(ctx, status, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list vehicles", err)
	}
	total, err := s.repo.Vehicle.CountAll(ctx, status)
	if err != nil {
		return nil, wrapInternal("count vehicles", err)
	}

	now := s.now()
	items := make([]response.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		rate, err := s.repo.DailyRate.FindMostRecent(ctx, v.Plate, now)
		if err != nil {
			return nil, wrapInternal("find daily rate", err)
		}
		items = append(items, response.VehicleToResponse(v, rate))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *vehicleService) Update(ctx context.Context, plate string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	vehicle, err := s.find(ctx, plate)
	if err != nil {
		return nil, err
	}

	if req.Brand != nil {
		vehicle.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		vehicle.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = strings.TrimSpace(*req.Color)
	}
	if req.Category != nil {
		vehicle.Category = strings.ToUpper(strings.TrimSpace(*req.Category))
	}
	vehicle.UpdatedAt = s.now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, wrapInternal("update vehicle", err)
	}

	resp := response.VehicleToResponse(vehicle, nil)
	return &resp, nil
}

// UpdateStatus is the manual override used by staff. Reservation and maintenance flows set the status themselves.
func (s *vehicleService) UpdateStatus(ctx context.Context, plate string, req *request.UpdateVehicleStatusRequest) (*response.VehicleResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status, err := entity.ParseVehicleStatus(req.Status)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}

	vehicle, err := s.find(ctx, plate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.Vehicle.UpdateStatus(ctx, vehicle.Plate, status, now); err != nil {
		return nil, wrapInternal("update vehicle status", err)
	}
	vehicle.Status = status
	vehicle.UpdatedAt = now

	s.log.Info("Vehicle status set manually", zap.String("plate", vehicle.Plate), zap.String("status", string(status)))
	resp := response.VehicleToResponse(vehicle, nil)
	return &resp, nil
}

func (s *vehicleService) Delete(ctx context.Context, plate string) error {
	plate = utils.NormalizePlate(plate)
	if err := s.repo.Vehicle.Delete(ctx, plate); err != nil {
		return wrapInternal("delete vehicle", err)
	}
	s.log.Info("Vehicle deleted", zap.String("plate", plate))
	return nil
}

func (s *vehicleService) AddDailyRate(ctx context.Context, plate string, req *request.CreateDailyRateRequest) (*response.DailyRateResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	vehicle, err := s.find(ctx, plate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	effectiveFrom := now
	if req.EffectiveFrom != nil {
		effectiveFrom = *req.EffectiveFrom
	}

	rate := &entity.DailyRate{
		ID:            uuid.New(),
		VehiclePlate:  vehicle.Plate,
		Amount:        utils.RoundMoney(req.Amount),
		EffectiveFrom: effectiveFrom,
		CreatedAt:     now,
	}
	if err := s.repo.DailyRate.Create(ctx, rate); err != nil {
		return nil, wrapInternal("create daily rate", err)
	}

	resp := response.DailyRateToResponse(rate)
	return &resp, nil
}

func (s *vehicleService) ListDailyRates(ctx context.Context, plate string) ([]response.DailyRateResponse, error) {
	vehicle, err := s.find(ctx, plate)
	if err != nil {
		return nil, err
	}

	rates, err := s.repo.DailyRate.FindByVehicle(ctx, vehicle.Plate)
	if err != nil {
		return nil, wrapInternal("list daily rates", err)
	}

	items := make([]response.DailyRateResponse, 0, len(rates))
	for _, r := range rates {
		items = append(items, response.DailyRateToResponse(r))
	}
	return items, nil
}

func (s *vehicleService) find(ctx context.Context, plate string) (*entity.Vehicle, error) {
	plate = utils.NormalizePlate(plate)
	vehicle, err := s.repo.Vehicle.FindByPlate(ctx, plate)
	if err != nil {
		return nil, wrapInternal("find vehicle", err)
	}
	if vehicle == nil {
		return nil, apperror.NotFound("vehicle", plate)
	}
	return vehicle, nil
}
