package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	reservation, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", reservation)
}

// GetReservations handles GET /api/reservations?status=&client_user_cpf=&vehicle_plate=
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	req := &request.ReservationListRequest{
		PaginatedRequest: paginationFrom(r),
		Status:           optionalQuery(r, "status"),
		ClientUserCPF:    optionalQuery(r, "client_user_cpf"),
		VehiclePlate:     optionalQuery(r, "vehicle_plate"),
	}

	reservations, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		handleServiceError(h.log, w, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "Reservations retrieved successfully", reservations)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	reservation, err := h.service.GetByID(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation retrieved successfully", reservation)
}

// UpdateReservation handles PUT /api/reservations/{id} (staff)
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	reservation, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation updated successfully", reservation)
}

// UpdateReservationStatus handles PATCH /api/reservations/{id}/status (staff)
func (h *ReservationHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateReservationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update reservation status")
		return
	}

	utils.ResponseSuccess(w, "Reservation status updated successfully", reservation)
}

// DeleteReservation handles DELETE /api/reservations/{id} (staff)
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation deleted successfully", nil)
}

// CalculateAmount handles POST /api/reservations/calculate-amount
func (h *ReservationHandler) CalculateAmount(w http.ResponseWriter, r *http.Request) {
	var req request.CalculateAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	amount, err := h.service.CalculateAmount(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "calculate amount")
		return
	}

	utils.ResponseSuccess(w, "Amount calculated successfully", amount)
}
