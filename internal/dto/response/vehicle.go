package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

type VehicleResponse struct {
	Plate            string               `json:"plate"`
	Brand            string               `json:"brand"`
	Model            string               `json:"model"`
	Year             int                  `json:"year"`
	Color            string               `json:"color"`
	Category         string               `json:"category"`
	Status           entity.VehicleStatus `json:"status"`
	CurrentDailyRate *float64             `json:"current_daily_rate,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type DailyRateResponse struct {
	ID            string    `json:"id"`
	VehiclePlate  string    `json:"vehicle_plate"`
	Amount        float64   `json:"amount"`
	EffectiveFrom time.Time `json:"effective_from"`
	CreatedAt     time.Time `json:"created_at"`
}

func VehicleToResponse(v *entity.Vehicle, rate *entity.DailyRate) VehicleResponse {
	resp := VehicleResponse{
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		Category:  v.Category,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if rate != nil {
		amount := rate.Amount
		resp.CurrentDailyRate = &amount
	}
	return resp
}

func DailyRateToResponse(rate *entity.DailyRate) DailyRateResponse {
	return DailyRateResponse{
		ID:            rate.ID.String(),
		VehiclePlate:  rate.VehiclePlate,
		Amount:        rate.Amount,
		EffectiveFrom: rate.EffectiveFrom,
		CreatedAt:     rate.CreatedAt,
	}
}
