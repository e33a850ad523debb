package usecase

import (
	"context"
	"fmt"
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

type PaymentService interface {
	Create(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error)
	GetByID(ctx context.Context, id string) (*response.PaymentResponse, error)
	List(ctx context.Context, req *request.PaymentListRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdatePaymentStatusRequest) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo       *repository.Repository
	pricing    PricingCalculator
	dispatcher events.Dispatcher
	now        func() time.Time
	log        *zap.Logger
}

func NewPaymentService(repo *repository.Repository, pricing PricingCalculator, dispatcher events.Dispatcher, log *zap.Logger) PaymentService {
	return newPaymentService(repo, pricing, dispatcher, time.Now, log)
}

func newPaymentService(repo *repository.Repository, pricing PricingCalculator, dispatcher events.Dispatcher, now func() time.Time, log *zap.Logger) *paymentService {
	return &paymentService{
		repo:       repo,
		pricing:    pricing,
		dispatcher: dispatcher,
		now:        now,
		log:        log.With(zap.String("service", "payment")),
	}
}

var paymentTransitions = map[entity.PaymentStatus][]entity.PaymentStatus{
	entity.PaymentStatusPending: {entity.PaymentStatusPaid, entity.PaymentStatusCancelled},
	entity.PaymentStatusPaid:    {entity.PaymentStatusCancelled},
}

func canChangePayment(from, to entity.PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Create records a pending payment. Without an explicit amount the reservation is priced.
func (s *paymentService) Create(ctx context.Context, req *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	reservationID, err := parseID("reservation", req.ReservationID)
	if err != nil {
		return nil, err
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, wrapInternal("find reservation", err)
	}
	if reservation == nil {
		return nil, apperror.NotFound("reservation", reservationID)
	}
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil, apperror.Validation("cannot register a payment for a cancelled reservation", nil)
	}

	var amount float64
	if req.Amount != nil {
		amount = utils.RoundMoney(*req.Amount)
	} else {
		amount, err = s.pricing.Calculate(ctx, reservation.StartDate, reservation.EndDate,
			reservation.VehiclePlate, reservation.PromotionCode)
		if err != nil {
			return nil, err
		}
	}

	payment := &entity.Payment{
		ID:            uuid.New(),
		ReservationID: reservation.ID,
		Amount:        amount,
		Method:        entity.PaymentMethod(req.Method),
		Status:        entity.PaymentStatusPending,
	}
	payment.Touch(s.now())

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, wrapInternal("create payment", err)
	}

	s.log.Info("Payment registered",
		zap.String("payment_id", payment.ID.String()),
		zap.String("reservation_id", reservation.ID.String()),
		zap.Float64("amount", amount),
	)
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*response.PaymentResponse, error) {
	paymentID, err := parseID("payment", id)
	if err != nil {
		return nil, err
	}
	payment, err := s.find(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) List(ctx context.Context, req *request.PaymentListRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	req.PaginatedRequest = normalizePage(req.PaginatedRequest)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var filter entity.PaymentFilter
	if req.ReservationID != nil {
		id, err := parseID("reservation", *req.ReservationID)
		if err != nil {
			return nil, err
		}
		filter.ReservationID = &id
	}
	if req.Status != nil {
		st := entity.PaymentStatus(*req.Status)
		filter.Status = &st
	}

	payments, err := s.repo.Payment.FindAll(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return nil, wrapInternal("list payments", err)
	}
	total, err := s.repo.Payment.CountAll(ctx, filter)
	if err != nil {
		return nil, wrapInternal("count payments", err)
	}

	items := make([]response.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, response.PaymentToResponse(p))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// UpdateStatus moves a payment along PENDING -> PAID -> CANCELLED. Settling publishes
// payment.settled and returns whatever the subscribers reported.
func (s *paymentService) UpdateStatus(ctx context.Context, actor Actor, id string, req *request.UpdatePaymentStatusRequest) (*response.PaymentResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	paymentID, err := parseID("payment", id)
	if err != nil {
		return nil, err
	}
	status, err := entity.ParsePaymentStatus(req.Status)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}

	payment, err := s.find(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == status {
		resp := response.PaymentToResponse(payment)
		return &resp, nil
	}
	if !canChangePayment(payment.Status, status) {
		return nil, apperror.InvalidState(fmt.Sprintf("cannot change payment status from %s to %s", payment.Status, status))
	}

	if status == entity.PaymentStatusPaid {
		reservation, err := s.repo.Reservation.FindByID(ctx, payment.ReservationID)
		if err != nil {
			return nil, wrapInternal("find reservation", err)
		}
		if reservation == nil {
			return nil, apperror.NotFound("reservation", payment.ReservationID)
		}
		if reservation.Status == entity.ReservationStatusCancelled {
			return nil, apperror.InvalidState("cannot settle a payment of a cancelled reservation")
		}
	}

	now := s.now()
	var paidAt *time.Time
	if status == entity.PaymentStatusPaid {
		paidAt = &now
	} else {
		paidAt = payment.PaidAt
	}
	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, status, paidAt, now); err != nil {
		return nil, wrapInternal("update payment status", err)
	}
	payment.Status = status
	payment.PaidAt = paidAt
	payment.UpdatedAt = now

	s.log.Info("Payment status changed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(status)),
	)

	eventType := events.EventPaymentSettled
	if status == entity.PaymentStatusCancelled {
		eventType = events.EventPaymentCanceled
	}
	event := events.NewEvent(eventType, actor.CPF, now, events.PaymentPayload{
		PaymentID:     payment.ID,
		ReservationID: payment.ReservationID,
		Amount:        payment.Amount,
	})
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		return nil, err
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) find(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.repo.Payment.FindByID(ctx, id)
	if err != nil {
		return nil, wrapInternal("find payment", err)
	}
	if payment == nil {
		return nil, apperror.NotFound("payment", id)
	}
	return payment, nil
}
