package usecase

import (
	"context"
	"time"

	"sigac-rental/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Period is a half-open rental interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two periods share any instant. Touching endpoints do not overlap.
func Overlaps(a, b Period) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// AvailabilityChecker answers whether a vehicle is free for a period.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, plate string, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type availabilityChecker struct {
	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewAvailabilityChecker(reservations repository.ReservationRepository, log *zap.Logger) AvailabilityChecker {
	return &availabilityChecker{
		reservations: reservations,
		log:          log.With(zap.String("service", "availability")),
	}
}

// IsAvailable is true when no PENDING, CONFIRMED or IN_PROGRESS reservation on plate overlaps
// [start, end). The reservation named by excludeID is ignored so an update never conflicts with itself.
func (c *availabilityChecker) IsAvailable(ctx context.Context, plate string, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	count, err := c.reservations.CountConflicting(ctx, plate, start, end, excludeID)
	if err != nil {
		return false, wrapInternal("check availability", err)
	}

	if count > 0 {
		c.log.Debug("Vehicle unavailable",
			zap.String("vehicle_plate", plate),
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Int64("conflicts", count),
		)
	}
	return count == 0, nil
}
