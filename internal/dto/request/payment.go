package request

type CreatePaymentRequest struct {
	ReservationID string   `json:"reservation_id" validate:"required,uuid"`
	Method        string   `json:"method" validate:"required,oneof=PIX CREDIT_CARD DEBIT_CARD CASH"`
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gte=0"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PAID CANCELLED"`
}

type PaymentListRequest struct {
	PaginatedRequest
	ReservationID *string `validate:"omitempty,uuid"`
	Status        *string `validate:"omitempty,oneof=PENDING PAID CANCELLED"`
}
