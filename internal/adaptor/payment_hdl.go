package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	payment, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create payment")
		return
	}

	utils.ResponseCreated(w, "Payment registered successfully", payment)
}

// GetPayments handles GET /api/payments?reservation_id=&status=
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	req := &request.PaymentListRequest{
		PaginatedRequest: paginationFrom(r),
		ReservationID:    optionalQuery(r, "reservation_id"),
		Status:           optionalQuery(r, "status"),
	}

	payments, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved successfully", payments)
}

// GetPayment handles GET /api/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "Payment retrieved successfully", payment)
}

// UpdatePaymentStatus handles PATCH /api/payments/{id}/status
func (h *PaymentHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	payment, err := h.service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status updated successfully", payment)
}
