package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePromotion(r chi.Router, promotionHandler *adaptor.PromotionHandler, g guards) {
	r.Route("/api/promotions", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", promotionHandler.GetPromotions)
		r.Get("/{code}", promotionHandler.GetPromotion)

		// ==================== STAFF ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth, g.staff)

			r.Post("/", promotionHandler.CreatePromotion)
			r.Put("/{code}", promotionHandler.UpdatePromotion)
			r.Delete("/{code}", promotionHandler.DeletePromotion)
		})
	})
}
