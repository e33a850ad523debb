package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log,
	}
}

// CreateVehicle handles POST /api/vehicles
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	vehicle, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "Vehicle created successfully", vehicle)
}

// GetVehicles handles GET /api/vehicles?status=
func (h *VehicleHandler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	req := &request.VehicleListRequest{
		PaginatedRequest: paginationFrom(r),
		Status:           optionalQuery(r, "status"),
	}

	vehicles, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle handles GET /api/vehicles/{plate}
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.service.GetByPlate(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		handleServiceError(h.log, w, err, "get vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle retrieved successfully", vehicle)
}

// UpdateVehicle handles PUT /api/vehicles/{plate}
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	vehicle, err := h.service.Update(r.Context(), chi.URLParam(r, "plate"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle updated successfully", vehicle)
}

// UpdateVehicleStatus handles PATCH /api/vehicles/{plate}/status
func (h *VehicleHandler) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateVehicleStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	vehicle, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "plate"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update vehicle status")
		return
	}

	utils.ResponseSuccess(w, "Vehicle status updated successfully", vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/{plate}
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "plate")); err != nil {
		handleServiceError(h.log, w, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "Vehicle deleted successfully", nil)
}

// AddDailyRate handles POST /api/vehicles/{plate}/rates
func (h *VehicleHandler) AddDailyRate(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDailyRateRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	rate, err := h.service.AddDailyRate(r.Context(), chi.URLParam(r, "plate"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "add daily rate")
		return
	}

	utils.ResponseCreated(w, "Daily rate created successfully", rate)
}

// GetDailyRates handles GET /api/vehicles/{plate}/rates
func (h *VehicleHandler) GetDailyRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.ListDailyRates(r.Context(), chi.URLParam(r, "plate"))
	if err != nil {
		handleServiceError(h.log, w, err, "list daily rates")
		return
	}

	utils.ResponseSuccess(w, "Daily rates retrieved successfully", rates)
}
