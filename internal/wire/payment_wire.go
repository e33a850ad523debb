package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, g guards) {
	r.With(g.auth, g.staff).Route("/api/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.CreatePayment)
		r.Get("/", paymentHandler.GetPayments)
		r.Get("/{id}", paymentHandler.GetPayment)
		r.Patch("/{id}/status", paymentHandler.UpdatePaymentStatus)
	})
}
