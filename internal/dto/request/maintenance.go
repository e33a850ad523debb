package request

import "time"

type CreateMaintenanceRequest struct {
	VehiclePlate  string    `json:"vehicle_plate" validate:"required,plate"`
	Description   string    `json:"description" validate:"required,max=500"`
	Cost          float64   `json:"cost" validate:"gte=0"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
}

type CompleteMaintenanceRequest struct {
	Cost *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
}

type MaintenanceListRequest struct {
	PaginatedRequest
	VehiclePlate *string `validate:"omitempty,plate"`
	Status       *string `validate:"omitempty,oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELLED"`
}
