package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPaymentSettled  EventType = "payment.settled"
	EventPaymentCanceled EventType = "payment.cancelled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorCPF  string    `json:"actor_cpf,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewEvent(eventType EventType, actorCPF string, at time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorCPF:  actorCPF,
		Timestamp: at,
		Payload:   payload,
	}
}

// PaymentPayload is carried by both payment events.
type PaymentPayload struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Amount        float64   `json:"amount"`
}
