package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

// GetSummary handles GET /api/dashboard/summary?from=&to=
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, err := optionalDateQuery(r, "from")
	if err != nil {
		utils.ResponseError(w, err)
		return
	}
	to, err := optionalDateQuery(r, "to")
	if err != nil {
		utils.ResponseError(w, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), &request.DashboardRequest{From: from, To: to})
	if err != nil {
		handleServiceError(h.log, w, err, "dashboard summary")
		return
	}

	utils.ResponseSuccess(w, "Dashboard retrieved successfully", summary)
}
