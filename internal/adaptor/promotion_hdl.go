package adaptor

import (
	"net/http"

	"sigac-rental/internal/dto/request"
	"sigac-rental/internal/usecase"
	"sigac-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PromotionHandler struct {
	service usecase.PromotionService
	log     *zap.Logger
}

func NewPromotionHandler(service usecase.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log,
	}
}

func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromotionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	promotion, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create promotion")
		return
	}

	utils.ResponseCreated(w, "Promotion created successfully", promotion)
}

func (h *PromotionHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	req := &request.PromotionListRequest{
		PaginatedRequest: paginationFrom(r),
		Status:           optionalQuery(r, "status"),
	}

	promotions, err := h.service.List(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list promotions")
		return
	}

	utils.ResponseSuccess(w, "Promotions retrieved successfully", promotions)
}

func (h *PromotionHandler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	promotion, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(h.log, w, err, "get promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion retrieved successfully", promotion)
}

func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePromotionRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseError(w, err)
		return
	}

	promotion, err := h.service.Update(r.Context(), chi.URLParam(r, "code"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion updated successfully", promotion)
}

func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "code")); err != nil {
		handleServiceError(h.log, w, err, "delete promotion")
		return
	}

	utils.ResponseSuccess(w, "Promotion deleted successfully", nil)
}
