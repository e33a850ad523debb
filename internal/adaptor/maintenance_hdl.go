package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	service usecase.MaintenanceService
	log     *zap.Logger
}

func NewMaintenanceHandler(service usecase.MaintenanceService, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		service: service,
		log:     log,
	}
}

func (h *MaintenanceHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	m, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create maintenance")
		return
	}

	utils.ResponseCreated(w, "Maintenance scheduled successfully", m)
}

func (h *MaintenanceHandler) GetMaintenances(w http.ResponseWriter, r *http.Request) {
	req := &request.MaintenanceListRequest{
		PaginatedRequest: paginationFrom(r),
		VehiclePlate:     optionalQuery(r, "vehicle_plate"),
		Status:           optionalQuery(r, "status"),
	}

	records, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list maintenances")
		return
	}

	utils.ResponseSuccess(w, "Maintenances retrieved successfully", records)
}

func (h *MaintenanceHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get maintenance")
		return
	}

	utils.ResponseSuccess(w, "Maintenance retrieved successfully", m)
}

// StartMaintenance handles PATCH /api/maintenances/{id}/start
func (h *MaintenanceHandler) StartMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Start(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "start maintenance")
		return
	}

	utils.ResponseSuccess(w, "Maintenance started", m)
}

// CompleteMaintenance handles PATCH /api/maintenances/{id}/complete
func (h *MaintenanceHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	var req request.CompleteMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	m, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "complete maintenance")
		return
	}

	utils.ResponseSuccess(w, "Maintenance completed", m)
}

// CancelMaintenance handles PATCH /api/maintenances/{id}/cancel
func (h *MaintenanceHandler) CancelMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "cancel maintenance")
		return
	}

	utils.ResponseSuccess(w, "Maintenance cancelled", m)
}
