package entity

import "fmt"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "DISPONIVEL"
	VehicleStatusUnavailable VehicleStatus = "INDISPONIVEL"
	VehicleStatusMaintenance VehicleStatus = "MANUTENCAO"
)

func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch status := VehicleStatus(s); status {
	case VehicleStatusAvailable, VehicleStatusUnavailable, VehicleStatusMaintenance:
		return status, nil
	default:
		return "", fmt.Errorf("invalid vehicle status: %s", s)
	}
}

type Vehicle struct {
	Plate    string        `db:"plate"`
	Brand    string        `db:"brand"`
	Model    string        `db:"model"`
	Year     int           `db:"year"`
	Color    string        `db:"color"`
	Category string        `db:"category"`
	Status   VehicleStatus `db:"status"`
	Timestamps
}
