package request

import "time"

// CreateReservationRequest carries the plate unchecked; its format is validated after the period.
type CreateReservationRequest struct {
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	ClientUserCPF   string    `json:"client_user_cpf" validate:"required,cpf"`
	EmployeeUserCPF *string   `json:"employee_user_cpf,omitempty" validate:"omitempty,cpf"`
	VehiclePlate    string    `json:"vehicle_plate" validate:"required"`
	PromotionCode   *string   `json:"promotion_code,omitempty" validate:"omitempty,max=30"`
}

// UpdateReservationRequest is a partial update. Absent fields keep their stored value.
type UpdateReservationRequest struct {
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Status          *string    `json:"status,omitempty"`
	EmployeeUserCPF *string    `json:"employee_user_cpf,omitempty" validate:"omitempty,cpf"`
	VehiclePlate    *string    `json:"vehicle_plate,omitempty"`
	PromotionCode   *string    `json:"promotion_code,omitempty" validate:"omitempty,max=30"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CalculateAmountRequest struct {
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	VehiclePlate  string    `json:"vehicle_plate" validate:"required,plate"`
	PromotionCode *string   `json:"promotion_code,omitempty" validate:"omitempty,max=30"`
}

type ReservationListRequest struct {
	PaginatedRequest
	Status        *string
	ClientUserCPF *string `validate:"omitempty,cpf"`
	VehiclePlate  *string `validate:"omitempty,plate"`
}
