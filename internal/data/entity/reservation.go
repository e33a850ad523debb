package entity

import (
	"fmt"
	"time"

	"sigac-rental/pkg/apperror"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "PENDING"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusInProgress ReservationStatus = "IN_PROGRESS"
	ReservationStatusCompleted  ReservationStatus = "COMPLETED"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
)

// reservationTransitions is the lifecycle graph. Self-transitions are handled separately.
var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusInProgress, ReservationStatusCancelled},
	ReservationStatusInProgress: {ReservationStatusCompleted, ReservationStatusCancelled},
	ReservationStatusCompleted:  {},
	ReservationStatusCancelled:  {},
}

// AllReservationStatuses lists every status in lifecycle order.
func AllReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusInProgress,
		ReservationStatusCompleted,
		ReservationStatusCancelled,
	}
}

// BlockingReservationStatuses are the statuses that occupy a vehicle.
func BlockingReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusInProgress,
	}
}

func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

func (s ReservationStatus) IsTerminal() bool {
	allowed, ok := reservationTransitions[s]
	return !ok || len(allowed) == 0
}

// BlocksVehicle reports whether a reservation in this status takes part in conflict checks.
func (s ReservationStatus) BlocksVehicle() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusInProgress:
		return true
	default:
		return false
	}
}

func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	if s == target {
		return s.IsValid()
	}
	for _, allowed := range reservationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.IsValid() {
		return "", apperror.Validation(fmt.Sprintf("invalid reservation status: %s", s), nil)
	}
	return status, nil
}

// InvalidTransitionError is returned for any status change outside the lifecycle graph.
type InvalidTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change reservation status from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return apperror.ErrInvalidStateTransition
}

// ValidateTransition checks a requested status change. Self-transitions always succeed.
func ValidateTransition(current, requested ReservationStatus) error {
	if current == requested {
		return nil
	}
	if !current.CanTransitionTo(requested) {
		return &InvalidTransitionError{From: current, To: requested}
	}
	return nil
}

// VehicleStatusFor is the vehicle status implied by a reservation reaching status s.
func VehicleStatusFor(s ReservationStatus) VehicleStatus {
	if s == ReservationStatusInProgress {
		return VehicleStatusUnavailable
	}
	return VehicleStatusAvailable
}

type Reservation struct {
	ID              uuid.UUID         `db:"id"`
	StartDate       time.Time         `db:"start_date"`
	EndDate         time.Time         `db:"end_date"`
	ReservationDate time.Time         `db:"reservation_date"`
	Status          ReservationStatus `db:"status"`
	PromotionCode   *string           `db:"promotion_code"`
	ClientUserCPF   string            `db:"client_user_cpf"`
	EmployeeUserCPF *string           `db:"employee_user_cpf"`
	VehiclePlate    string            `db:"vehicle_plate"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// WithStatus returns a copy carrying the new status.
func (r Reservation) WithStatus(status ReservationStatus, at time.Time) Reservation {
	r.Status = status
	r.UpdatedAt = at
	return r
}

// ReservationDetail is the enriched read model joined with client, employee and vehicle.
type ReservationDetail struct {
	Reservation
	ClientName   string  `db:"client_name"`
	EmployeeName *string `db:"employee_name"`
	VehicleBrand string  `db:"vehicle_brand"`
	VehicleModel string  `db:"vehicle_model"`
}

// ReservationFilter narrows reservation listings; zero values mean "any".
type ReservationFilter struct {
	Status        *ReservationStatus
	ClientUserCPF *string
	VehiclePlate  *string
}
