package response

import (
	"time"

	"sigac-rental/internal/data/entity"
)

type DashboardResponse struct {
	From             time.Time        `json:"from"`
	To               time.Time        `json:"to"`
	Vehicles         map[string]int64 `json:"vehicles"`
	Reservations     map[string]int64 `json:"reservations"`
	Revenue          float64          `json:"revenue"`
	PaidPayments     int64            `json:"paid_payments"`
	ActivePromotions int64            `json:"active_promotions"`
	OpenMaintenances int64            `json:"open_maintenances"`
	MaintenanceCost  float64          `json:"maintenance_cost"`
	TotalClients     int64            `json:"total_clients"`
	AverageTicket    float64          `json:"average_ticket"`
}

// DashboardToResponse fills in zero counts for statuses with no rows.
func DashboardToResponse(s *entity.DashboardStats) DashboardResponse {
	vehicles := map[string]int64{
		string(entity.VehicleStatusAvailable):   0,
		string(entity.VehicleStatusUnavailable): 0,
		string(entity.VehicleStatusMaintenance): 0,
	}
	for status, n := range s.VehiclesByStatus {
		vehicles[string(status)] = n
	}

	reservations := make(map[string]int64, len(entity.AllReservationStatuses()))
	for _, status := range entity.AllReservationStatuses() {
		reservations[string(status)] = s.ReservationsByStatus[status]
	}

	var avg float64
	if s.PaidPayments > 0 {
		avg = s.Revenue / float64(s.PaidPayments)
	}

	return DashboardResponse{
		From:             s.From,
		To:               s.To,
		Vehicles:         vehicles,
		Reservations:     reservations,
		Revenue:          s.Revenue,
		PaidPayments:     s.PaidPayments,
		ActivePromotions: s.ActivePromotions,
		OpenMaintenances: s.OpenMaintenances,
		MaintenanceCost:  s.MaintenanceCost,
		TotalClients:     s.TotalClients,
		AverageTicket:    avg,
	}
}
