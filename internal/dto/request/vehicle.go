package request

import "time"

type CreateVehicleRequest struct {
	Plate     string   `json:"plate" validate:"required,plate"`
	Brand     string   `json:"brand" validate:"required,max=60"`
	Model     string   `json:"model" validate:"required,max=60"`
	Year      int      `json:"year" validate:"required,min=1950,max=2100"`
	Color     string   `json:"color" validate:"required,max=30"`
	Category  string   `json:"category" validate:"required,max=30"`
	DailyRate *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
}

type UpdateVehicleRequest struct {
	Brand    *string `json:"brand,omitempty" validate:"omitempty,max=60"`
	Model    *string `json:"model,omitempty" validate:"omitempty,max=60"`
	Year     *int    `json:"year,omitempty" validate:"omitempty,min=1950,max=2100"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=30"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=30"`
}

type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DISPONIVEL INDISPONIVEL MANUTENCAO"`
}

type CreateDailyRateRequest struct {
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	EffectiveFrom *time.Time `json:"effective_from,omitempty"`
}

type VehicleListRequest struct {
	PaginatedRequest
	Status *string `validate:"omitempty,oneof=DISPONIVEL INDISPONIVEL MANUTENCAO"`
}
