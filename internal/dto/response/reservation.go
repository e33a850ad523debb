package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

type ReservationResponse struct {
	ID              string                   `json:"id"`
	StartDate       time.Time                `json:"start_date"`
	EndDate         time.Time                `json:"end_date"`
	ReservationDate time.Time                `json:"reservation_date"`
	Status          entity.ReservationStatus `json:"status"`
	PromotionCode   *string                  `json:"promotion_code,omitempty"`
	ClientUserCPF   string                   `json:"client_user_cpf"`
	ClientName      string                   `json:"client_name"`
	EmployeeUserCPF *string                  `json:"employee_user_cpf,omitempty"`
	EmployeeName    *string                  `json:"employee_name,omitempty"`
	VehiclePlate    string                   `json:"vehicle_plate"`
	VehicleBrand    string                   `json:"vehicle_brand"`
	VehicleModel    string                   `json:"vehicle_model"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// AmountResponse breaks down a calculated rental amount.
type AmountResponse struct {
	DailyRate          float64 `json:"daily_rate"`
	Days               int     `json:"days"`
	BaseAmount         float64 `json:"base_amount"`
	DiscountPercentage int     `json:"discount_percentage"`
	Amount             float64 `json:"amount"`
}

func ReservationToResponse(d *entity.ReservationDetail) ReservationResponse {
	return ReservationResponse{
		ID:              d.ID.String(),
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		ReservationDate: d.ReservationDate,
		Status:          d.Status,
		PromotionCode:   d.PromotionCode,
		ClientUserCPF:   d.ClientUserCPF,
		ClientName:      d.ClientName,
		EmployeeUserCPF: d.EmployeeUserCPF,
		EmployeeName:    d.EmployeeName,
		VehiclePlate:    d.VehiclePlate,
		VehicleBrand:    d.VehicleBrand,
		VehicleModel:    d.VehicleModel,
		UpdatedAt:       d.UpdatedAt,
	}
}
