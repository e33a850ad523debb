package wire

import (
	"sigac-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, g guards) {
	r.With(g.auth, g.staff).Get("/api/dashboard/summary", dashboardHandler.GetSummary)
}
