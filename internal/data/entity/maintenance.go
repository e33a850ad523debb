package entity

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "SCHEDULED"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatus = "CANCELLED"
)

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenanceStatusScheduled:  {MaintenanceStatusInProgress, MaintenanceStatusCancelled},
	MaintenanceStatusInProgress: {MaintenanceStatusCompleted},
	MaintenanceStatusCompleted:  {},
	MaintenanceStatusCancelled:  {},
}

func (s MaintenanceStatus) CanTransitionTo(target MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Maintenance struct {
	ID            uuid.UUID         `db:"id"`
	VehiclePlate  string            `db:"vehicle_plate"`
	Description   string            `db:"description"`
	Cost          float64           `db:"cost"`
	ScheduledDate time.Time         `db:"scheduled_date"`
	CompletedDate *time.Time        `db:"completed_date"`
	Status        MaintenanceStatus `db:"status"`
	Timestamps
}

type MaintenanceFilter struct {
	VehiclePlate *string
	Status       *MaintenanceStatus
}
