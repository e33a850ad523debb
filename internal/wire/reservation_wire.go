package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireReservation mounts reservation routes. Clients may create and read their own
// reservations; edits, status changes and deletes are staff only.
func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler, g guards) {
	r.With(g.auth).Route("/api/reservations", func(r chi.Router) {
		r.Post("/", reservationHandler.CreateReservation)
		r.Get("/", reservationHandler.GetReservations)
		r.Post("/calculate-amount", reservationHandler.CalculateAmount)
		r.Get("/{id}", reservationHandler.GetReservation)

		r.Group(func(r chi.Router) {
			r.Use(g.staff)

			r.Put("/{id}", reservationHandler.UpdateReservation)
			r.Patch("/{id}/status", reservationHandler.UpdateReservationStatus)
			r.Delete("/{id}", reservationHandler.DeleteReservation)
		})
	})
}
