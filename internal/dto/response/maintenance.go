package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

type MaintenanceResponse struct {
	ID            string                   `json:"id"`
	VehiclePlate  string                   `json:"vehicle_plate"`
	Description   string                   `json:"description"`
	Cost          float64                  `json:"cost"`
	ScheduledDate time.Time                `json:"scheduled_date"`
	CompletedDate *time.Time               `json:"completed_date,omitempty"`
	Status        entity.MaintenanceStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func MaintenanceToResponse(m *entity.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:            m.ID.String(),
		VehiclePlate:  m.VehiclePlate,
		Description:   m.Description,
		Cost:          m.Cost,
		ScheduledDate: m.ScheduledDate,
		CompletedDate: m.CompletedDate,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
