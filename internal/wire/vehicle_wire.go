package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVehicle(r chi.Router, vehicleHandler *adaptor.VehicleHandler, g guards) {
	r.Route("/api/vehicles", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", vehicleHandler.GetVehicles)
		r.Get("/{plate}", vehicleHandler.GetVehicle)

		// ==================== STAFF ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.staff)

			r.Post("/", vehicleHandler.CreateVehicle)
			r.Put("/{plate}", vehicleHandler.UpdateVehicle)
			r.Delete("/{plate}", vehicleHandler.DeleteVehicle)
			r.Patch("/{plate}/status", vehicleHandler.UpdateVehicleStatus)
			r.Get("/{plate}/rates", vehicleHandler.GetDailyRates)
			r.Post("/{plate}/rates", vehicleHandler.AddDailyRate)
		})
	})
}
