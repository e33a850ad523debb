package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch status := PaymentStatus(s); status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
}

type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
)

type Payment struct {
	ID            uuid.UUID     `db:"id"`
	ReservationID uuid.UUID     `db:"reservation_id"`
	Amount        float64       `db:"amount"`
	Method        PaymentMethod `db:"method"`
	Status        PaymentStatus `db:"status"`
	PaidAt        *time.Time    `db:"paid_at"`
	Timestamps
}

type PaymentFilter struct {
	ReservationID *uuid.UUID
	Status        *PaymentStatus
}
