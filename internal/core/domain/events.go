package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventAmortizationCreated = "amortization.created"
	EventPaymentRecorded     = "amortization.payment_recorded"
	EventScheduleRegenerated = "amortization.schedule_regenerated"
	EventAmortizationUpdated = "amortization.updated"
	EventAmortizationDeleted = "amortization.deleted"
)

// DomainEvent is published after a change to an amortization has been committed.
type DomainEvent struct {
	EventID     string         `json:"event_id"`
	EventType   string         `json:"event_type"`
	AggregateID string         `json:"aggregate_id"`
	CompanyID   string         `json:"company_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// NewAmortizationEvent builds an event about a.
func NewAmortizationEvent(eventType string, a *Amortization, at time.Time, payload map[string]any) DomainEvent {
	return DomainEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: a.ID,
		CompanyID:   a.CompanyID,
		OccurredAt:  at.UTC(),
		Payload:     payload,
	}
}
