package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMaintenance(r chi.Router, maintenanceHandler *adaptor.MaintenanceHandler, g guards) {
	r.With(g.auth, g.staff).Route("/api/maintenances", func(r chi.Router) {
		r.Post("/", maintenanceHandler.CreateMaintenance)
		r.Get("/", maintenanceHandler.GetMaintenances)
		r.Get("/{id}", maintenanceHandler.GetMaintenance)
		r.Patch("/{id}/start", maintenanceHandler.StartMaintenance)
		r.Patch("/{id}/complete", maintenanceHandler.CompleteMaintenance)
		r.Patch("/{id}/cancel", maintenanceHandler.CancelMaintenance)
	})
}
