package entity

import (
	"errors"
	"testing"
	"time"

	"sigac-rental/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationTransitions(t *testing.T) {
	allowed := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
		ReservationStatusConfirmed:  {ReservationStatusInProgress, ReservationStatusCancelled},
		ReservationStatusInProgress: {ReservationStatusCompleted, ReservationStatusCancelled},
	}

	for _, from := range AllReservationStatuses() {
		for _, to := range AllReservationStatuses() {
			want := from == to
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			err := ValidateTransition(from, to)
			if want {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}

			var transitionErr *InvalidTransitionError
			require.True(t, errors.As(err, &transitionErr), "%s -> %s", from, to)
			assert.Equal(t, from, transitionErr.From)
			assert.Equal(t, to, transitionErr.To)
			assert.True(t, errors.Is(err, apperror.ErrInvalidStateTransition))
		}
	}
}

func TestReservationStatus_Predicates(t *testing.T) {
	assert.True(t, ReservationStatusCompleted.IsTerminal())
	assert.True(t, ReservationStatusCancelled.IsTerminal())
	assert.False(t, ReservationStatusPending.IsTerminal())

	for _, s := range AllReservationStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, ReservationStatus("LOST").IsValid())
	assert.False(t, ReservationStatus("LOST").CanTransitionTo("LOST"))

	assert.ElementsMatch(t, BlockingReservationStatuses(), []ReservationStatus{
		ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusInProgress,
	})
	for _, s := range BlockingReservationStatuses() {
		assert.True(t, s.BlocksVehicle())
	}
	assert.False(t, ReservationStatusCompleted.BlocksVehicle())
	assert.False(t, ReservationStatusCancelled.BlocksVehicle())
}

func TestVehicleStatusFor(t *testing.T) {
	for _, s := range AllReservationStatuses() {
		want := VehicleStatusAvailable
		if s == ReservationStatusInProgress {
			want = VehicleStatusUnavailable
		}
		assert.Equal(t, want, VehicleStatusFor(s), s)
	}
}

func TestParseReservationStatus(t *testing.T) {
	got, err := ParseReservationStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, ReservationStatusConfirmed, got)

	_, err = ParseReservationStatus("confirmed")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestWithStatus_LeavesOriginal(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	orig := Reservation{Status: ReservationStatusPending}

	next := orig.WithStatus(ReservationStatusConfirmed, at)
	assert.Equal(t, ReservationStatusConfirmed, next.Status)
	assert.Equal(t, at, next.UpdatedAt)
	assert.Equal(t, ReservationStatusPending, orig.Status)
}
