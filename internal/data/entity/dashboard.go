package entity

import "time"

// DashboardStats aggregates operational numbers for the staff dashboard.
type DashboardStats struct {
	From                 time.Time
	To                   time.Time
	VehiclesByStatus     map[VehicleStatus]int64
	ReservationsByStatus map[ReservationStatus]int64
	Revenue              float64
	PaidPayments         int64
	ActivePromotions     int64
	OpenMaintenances     int64
	MaintenanceCost      float64
	TotalClients         int64
}
