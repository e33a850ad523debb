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
	"sigac-rental/internal/events"
	"sigac-rental/pkg/apperror"
	"sigac-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// startGrace is how far in the past a new reservation may start.
const startGrace = time.Hour

type ReservationService interface {
	Create(ctx context.Context, actor Actor, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (*response.ReservationResponse, error)
	List(ctx context.Context, actor Actor, req *request.ReservationListRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
	CalculateAmount(ctx context.Context, req *request.CalculateAmountRequest) (*response.AmountResponse, error)

	// HandlePaymentSettled confirms the paid reservation. Subscribed to events.EventPaymentSettled.
	HandlePaymentSettled(ctx context.Context, event events.Event) error
	// HandlePaymentCanceled records a cancelled payment against its reservation without changing its status.
	HandlePaymentCanceled(ctx context.Context, event events.Event) error
}

type reservationService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReservationService(repo *repository.Repository, log *zap.Logger) ReservationService {
	return newReservationService(repo, time.Now, log)
}

func newReservationService(repo *repository.Repository, now func() time.Time, log *zap.Logger) *reservationService {
	return &reservationService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Create(ctx context.Context, actor Actor, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// 1. Required fields and CPF shape
	if err := validateRequest(req); err != nil {
		s.log.Warn("Create reservation validation failed", zap.Error(err))
		return nil, err
	}

	clientCPF := utils.NormalizeCPF(req.ClientUserCPF)
	if actor.IsClient() && clientCPF != actor.CPF {
		return nil, apperror.Validation("clients can only create reservations for themselves",
			map[string]string{"client_user_cpf": "must match the authenticated user"})
	}

	// 2. Period
	now := s.now()
	if err := validatePeriod(req.StartDate, req.EndDate, now, true, true); err != nil {
		return nil, err
	}

	// 3. Plate
	plate, err := normalizeVehiclePlate(req.VehiclePlate)
	if err != nil {
		return nil, err
	}

	employeeCPF := normalizeOptionalCPF(req.EmployeeUserCPF)
	if employeeCPF == nil && actor.Role.IsStaff() {
		employeeCPF = &actor.CPF
	}
	promotionCode := normalizePromotionCode(req.PromotionCode)

	var created *entity.ReservationDetail
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := s.checkReferences(ctx, tx, &clientCPF, employeeCPF, promotionCode); err != nil {
			return err
		}

		// 4. Availability, serialized per vehicle by the row lock
		if err := s.ensureAvailable(ctx, tx, plate, req.StartDate, req.EndDate, nil); err != nil {
			return err
		}

		// 5. Persist
		reservation := &entity.Reservation{
			ID:              uuid.New(),
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			ReservationDate: now,
			Status:          entity.ReservationStatusPending,
			PromotionCode:   promotionCode,
			ClientUserCPF:   clientCPF,
			EmployeeUserCPF: employeeCPF,
			VehiclePlate:    plate,
			UpdatedAt:       now,
		}
		if err := tx.Reservation.Create(ctx, reservation); err != nil {
			return wrapInternal("create reservation", err)
		}

		// 6. Enriched read model
		detail, err := s.loadDetail(ctx, tx, reservation.ID)
		if err != nil {
			return err
		}
		created = detail
		return nil
	})
	if err != nil {
		s.log.Info("Reservation not created",
			zap.String("vehicle_plate", plate),
			zap.String("client_cpf", clientCPF),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", created.ID.String()),
		zap.String("vehicle_plate", plate),
		zap.String("client_cpf", clientCPF),
	)

	resp := response.ReservationToResponse(created)
	return &resp, nil
}

func (s *reservationService) GetByID(ctx context.Context, actor Actor, id string) (*response.ReservationResponse, error) {
	reservationID, err := parseID("reservation", id)
	if err != nil {
		return nil, err
	}

	detail, err := s.loadDetail(ctx, s.repo, reservationID)
	if err != nil {
		return nil, err
	}
	// clients never learn about other clients' reservations
	if actor.IsClient() && detail.ClientUserCPF != actor.CPF {
		return nil, apperror.NotFound("reservation", reservationID)
	}

	resp := response.ReservationToResponse(detail)
	return &resp, nil
}

func (s *reservationService) List(ctx context.Context, actor Actor, req *request.ReservationListRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var filter entity.ReservationFilter
	if req.Status != nil {
		status, err := entity.ParseReservationStatus(strings.ToUpper(*req.Status))
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if req.ClientUserCPF != nil {
		cpf := utils.NormalizeCPF(*req.ClientUserCPF)
		filter.ClientUserCPF = &cpf
	}
	if req.VehiclePlate != nil {
		plate := utils.NormalizePlate(*req.VehiclePlate)
		filter.VehiclePlate = &plate
	}
	if actor.IsClient() {
		filter.ClientUserCPF = &actor.CPF
	}

	details, err := s.repo.Reservation.FindAll(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list reservations", err)
	}
	total, err := s.repo.Reservation.CountAll(ctx, filter)
	if err != nil {
		return nil, wrapInternal("count reservations", err)
	}

	items := make([]response.ReservationResponse, 0, len(details))
	for _, d := range details {
		items = append(items, response.ReservationToResponse(d))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *reservationService) Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	reservationID, err := parseID("reservation", id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		s.log.Warn("Update reservation validation failed", zap.Error(err))
		return nil, err
	}

	var requested *entity.ReservationStatus
	if req.Status != nil {
		status, err := entity.ParseReservationStatus(strings.ToUpper(*req.Status))
		if err != nil {
			return nil, err
		}
		requested = &status
	}

	var updated *entity.ReservationDetail
	err = s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Reservation.FindByID(ctx, reservationID)
		if err != nil {
			return wrapInternal("find reservation", err)
		}
		if existing == nil {
			return apperror.NotFound("reservation", reservationID)
		}

		statusChanged := requested != nil && *requested != existing.Status
		if statusChanged {
			if err := entity.ValidateTransition(existing.Status, *requested); err != nil {
				return err
			}
		}

		edits := req.StartDate != nil || req.EndDate != nil || req.VehiclePlate != nil ||
			req.EmployeeUserCPF != nil || req.PromotionCode != nil
		if edits && existing.Status.IsTerminal() {
			return apperror.InvalidState(fmt.Sprintf("reservation is %s and can no longer be edited", existing.Status))
		}

		now := s.now()
		merged := *existing
		if req.StartDate != nil {
			merged.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			merged.EndDate = *req.EndDate
		}
		if err := validatePeriod(merged.StartDate, merged.EndDate, now, req.StartDate != nil, req.EndDate != nil); err != nil {
			return err
		}
		if req.VehiclePlate != nil {
			plate, err := normalizeVehiclePlate(*req.VehiclePlate)
			if err != nil {
				return err
			}
			merged.VehiclePlate = plate
		}
		if req.EmployeeUserCPF != nil {
			merged.EmployeeUserCPF = normalizeOptionalCPF(req.EmployeeUserCPF)
		}
		if req.PromotionCode != nil {
			merged.PromotionCode = normalizePromotionCode(req.PromotionCode)
		}
		if requested != nil {
			merged.Status = *requested
		}

		var employee, promotion *string
		if req.EmployeeUserCPF != nil {
			employee = merged.EmployeeUserCPF
		}
		if req.PromotionCode != nil {
			promotion = merged.PromotionCode
		}
		if err := s.checkReferences(ctx, tx, nil, employee, promotion); err != nil {
			return err
		}

		// the vehicle held by an in-progress rental is released when the rental moves
		plateChanged := merged.VehiclePlate != existing.VehiclePlate
		releaseOld := plateChanged && existing.Status == entity.ReservationStatusInProgress
		if releaseOld {
			if _, err := tx.Vehicle.LockByPlate(ctx, existing.VehiclePlate); err != nil {
				return wrapInternal("lock vehicle", err)
			}
		}

		// a reservation that no longer blocks the vehicle cannot conflict with anything
		if merged.Status.BlocksVehicle() {
			if err := s.ensureAvailable(ctx, tx, merged.VehiclePlate, merged.StartDate, merged.EndDate, &merged.ID); err != nil {
				return err
			}
		}

		merged = merged.WithStatus(merged.Status, now)
		if err := tx.Reservation.Update(ctx, &merged); err != nil {
			return wrapInternal("update reservation", err)
		}

		if releaseOld {
			if err := s.syncVehicle(ctx, tx, existing.VehiclePlate, entity.ReservationStatusCompleted, now); err != nil {
				return err
			}
		}
		if statusChanged || (plateChanged && merged.Status == entity.ReservationStatusInProgress) {
			if err := s.syncVehicle(ctx, tx, merged.VehiclePlate, merged.Status, now); err != nil {
				return err
			}
		}

		updated, err = s.loadDetail(ctx, tx, reservationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation updated",
		zap.String("reservation_id", reservationID.String()),
		zap.String("status", string(updated.Status)),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	reservationID, err := parseID("reservation", id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	status, err := entity.ParseReservationStatus(strings.ToUpper(req.Status))
	if err != nil {
		return nil, err
	}

	detail, err := s.changeStatus(ctx, reservationID, status)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(detail)
	return &resp, nil
}

// changeStatus moves a reservation through the lifecycle and keeps the vehicle status in step.
// Both writes share one transaction.
func (s *reservationService) changeStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) (*entity.ReservationDetail, error) {
	var detail *entity.ReservationDetail
	err := s.repo.WithinTx(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Reservation.FindByID(ctx, id)
		if err != nil {
			return wrapInternal("find reservation", err)
		}
		if existing == nil {
			return apperror.NotFound("reservation", id)
		}

		if existing.Status != status {
			if err := entity.ValidateTransition(existing.Status, status); err != nil {
				return err
			}

			now := s.now()
			if err := tx.Reservation.UpdateStatus(ctx, id, status, now); err != nil {
				return wrapInternal("update reservation status", err)
			}
			if err := s.syncVehicle(ctx, tx, existing.VehiclePlate, status, now); err != nil {
				return err
			}

			s.log.Info("Reservation status changed",
				zap.String("reservation_id", id.String()),
				zap.String("from", string(existing.Status)),
				zap.String("to", string(status)),
			)
		}

		detail, err = s.loadDetail(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	reservationID, err := parseID("reservation", id)
	if err != nil {
		return err
	}

	existing, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return wrapInternal("find reservation", err)
	}
	if existing == nil {
		return apperror.NotFound("reservation", reservationID)
	}

	switch existing.Status {
	case entity.ReservationStatusInProgress, entity.ReservationStatusCompleted:
		return apperror.Validation(fmt.Sprintf("cannot delete a reservation that is %s", existing.Status), nil)
	}

	if err := s.repo.Reservation.Delete(ctx, reservationID); err != nil {
		return wrapInternal("delete reservation", err)
	}

	s.log.Info("Reservation deleted", zap.String("reservation_id", reservationID.String()))
	return nil
}

func (s *reservationService) CalculateAmount(ctx context.Context, req *request.CalculateAmountRequest) (*response.AmountResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	plate := utils.NormalizePlate(req.VehiclePlate)
	calc := newPricingCalculator(s.repo.DailyRate, s.repo.Promotion, s.now, s.log)
	quote, err := calc.Quote(ctx, req.StartDate, req.EndDate, plate, normalizePromotionCode(req.PromotionCode))
	if err != nil {
		return nil, err
	}

	return &response.AmountResponse{
		DailyRate:          quote.DailyRate,
		Days:               quote.Days,
		BaseAmount:         quote.BaseAmount,
		DiscountPercentage: quote.DiscountPercentage,
		Amount:             quote.Amount,
	}, nil
}

func paymentPayload(event events.Event) (events.PaymentPayload, error) {
	switch p := event.Payload.(type) {
	case events.PaymentPayload:
		return p, nil
	case *events.PaymentPayload:
		return *p, nil
	default:
		return events.PaymentPayload{}, fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
}

func (s *reservationService) HandlePaymentSettled(ctx context.Context, event events.Event) error {
	payload, err := paymentPayload(event)
	if err != nil {
		return err
	}

	existing, err := s.repo.Reservation.FindByID(ctx, payload.ReservationID)
	if err != nil {
		return wrapInternal("find reservation", err)
	}
	if existing == nil {
		return apperror.NotFound("reservation", payload.ReservationID)
	}

	switch existing.Status {
	case entity.ReservationStatusPending:
		_, err := s.changeStatus(ctx, existing.ID, entity.ReservationStatusConfirmed)
		return err
	case entity.ReservationStatusCancelled:
		return &entity.InvalidTransitionError{From: existing.Status, To: entity.ReservationStatusConfirmed}
	default:
		// already confirmed or further along
		return nil
	}
}

func (s *reservationService) HandlePaymentCanceled(ctx context.Context, event events.Event) error {
	payload, err := paymentPayload(event)
	if err != nil {
		return err
	}

	existing, err := s.repo.Reservation.FindByID(ctx, payload.ReservationID)
	if err != nil {
		return wrapInternal("find reservation", err)
	}
	if existing == nil {
		return apperror.NotFound("reservation", payload.ReservationID)
	}

	s.log.Warn("Payment cancelled for reservation",
		zap.String("payment_id", payload.PaymentID.String()),
		zap.String("reservation_id", existing.ID.String()),
		zap.String("reservation_status", string(existing.Status)),
		zap.Float64("amount", payload.Amount),
		zap.String("actor_cpf", event.ActorCPF),
	)
	return nil
}

func (s *reservationService) ensureAvailable(ctx context.Context, tx *repository.Repository, plate string, start, end time.Time, excludeID *uuid.UUID) error {
	vehicle, err := tx.Vehicle.LockByPlate(ctx, plate)
	if err != nil {
		return wrapInternal("lock vehicle", err)
	}
	if vehicle == nil {
		return apperror.NotFound("vehicle", plate)
	}
	if vehicle.Status == entity.VehicleStatusMaintenance {
		return apperror.VehicleUnavailable(plate)
	}

	available, err := NewAvailabilityChecker(tx.Reservation, s.log).IsAvailable(ctx, plate, start, end, excludeID)
	if err != nil {
		return err
	}
	if !available {
		return apperror.VehicleUnavailable(plate)
	}
	return nil
}

func (s *reservationService) syncVehicle(ctx context.Context, tx *repository.Repository, plate string, status entity.ReservationStatus, at time.Time) error {
	vehicleStatus := entity.VehicleStatusFor(status)
	if err := tx.Vehicle.UpdateStatus(ctx, plate, vehicleStatus, at); err != nil {
		s.log.Error("Failed to sync vehicle status",
			zap.Error(err),
			zap.String("vehicle_plate", plate),
			zap.String("vehicle_status", string(vehicleStatus)),
		)
		return wrapInternal("sync vehicle status", err)
	}
	return nil
}

// checkReferences verifies that the referenced client, employee and promotion exist. Nil arguments are skipped.
func (s *reservationService) checkReferences(ctx context.Context, tx *repository.Repository, clientCPF, employeeCPF, promotionCode *string) error {
	if clientCPF != nil {
		client, err := tx.User.FindByCPF(ctx, *clientCPF)
		if err != nil {
			return wrapInternal("find client", err)
		}
		if client == nil {
			return apperror.NotFound("client", *clientCPF)
		}
		if client.Role != entity.RoleClient || !client.IsActive {
			return apperror.Validation(fmt.Sprintf("user %s is not an active client", *clientCPF), nil)
		}
	}

	if employeeCPF != nil {
		employee, err := tx.User.FindByCPF(ctx, *employeeCPF)
		if err != nil {
			return wrapInternal("find employee", err)
		}
		if employee == nil {
			return apperror.NotFound("employee", *employeeCPF)
		}
		if !employee.Role.IsStaff() {
			return apperror.Validation(fmt.Sprintf("user %s is not an employee", *employeeCPF), nil)
		}
	}

	if promotionCode != nil {
		promotion, err := tx.Promotion.FindByCode(ctx, *promotionCode)
		if err != nil {
			return wrapInternal("find promotion", err)
		}
		if promotion == nil {
			return apperror.NotFound("promotion", *promotionCode)
		}
	}
	return nil
}

func (s *reservationService) loadDetail(ctx context.Context, repo *repository.Repository, id uuid.UUID) (*entity.ReservationDetail, error) {
	detail, err := repo.Reservation.FindDetailByID(ctx, id)
	if err != nil {
		return nil, wrapInternal("find reservation detail", err)
	}
	if detail == nil {
		return nil, apperror.NotFound("reservation", id)
	}
	return detail, nil
}

// validatePeriod checks start < end and, when asked, that the edges are not in the past.
func validatePeriod(start, end, now time.Time, checkStart, checkEnd bool) error {
	if !start.Before(end) {
		return apperror.Validation("start_date must be before end_date",
			map[string]string{"end_date": "must be after start_date"})
	}
	if checkStart && start.Before(now.Add(-startGrace)) {
		return apperror.Validation("start_date cannot be more than 1 hour in the past",
			map[string]string{"start_date": "too far in the past"})
	}
	if checkEnd && end.Before(now) {
		return apperror.Validation("end_date cannot be in the past",
			map[string]string{"end_date": "in the past"})
	}
	return nil
}

func normalizeVehiclePlate(raw string) (string, error) {
	plate := utils.NormalizePlate(raw)
	if !utils.IsValidPlate(plate) {
		return "", apperror.Validation(fmt.Sprintf("invalid vehicle plate: %s", raw),
			map[string]string{"vehicle_plate": "Must be a plate like ABC1234 or ABC1D23"})
	}
	return plate, nil
}

func normalizeOptionalCPF(raw *string) *string {
	v := trimmedPtr(raw)
	if v == nil {
		return nil
	}
	cpf := utils.NormalizeCPF(*v)
	return &cpf
}

func normalizePromotionCode(raw *string) *string {
	v := trimmedPtr(raw)
	if v == nil {
		return nil
	}
	code := strings.ToUpper(*v)
	return &code
}
