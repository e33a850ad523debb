package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyRate is a per-vehicle price effective from a given instant onwards.
type DailyRate struct {
	ID            uuid.UUID `db:"id"`
	VehiclePlate  string    `db:"vehicle_plate"`
	Amount        float64   `db:"amount"`
	EffectiveFrom time.Time `db:"effective_from"`
	CreatedAt     time.Time `db:"created_at"`
}
