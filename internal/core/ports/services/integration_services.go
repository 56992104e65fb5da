package services

import (
	"context"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
)

// LedgerClient posts payments to the external accounting system.
type LedgerClient interface {
	// RecordEntry posts a journal entry for the payment and returns the ledger's reference for it.
	RecordEntry(ctx context.Context, entry domain.LedgerEntry) (string, error)
}

// EventPublisher delivers domain events after they have been committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.DomainEvent) error
	Close() error
}

// MetricsRecorder receives business counters from the services.
type MetricsRecorder interface {
	AmortizationCreated(method string)
	ScheduleGenerated(method string, installments int)
	PaymentRecorded(method string, amount float64)
	LedgerPosted(success bool)
	ConflictRetried(operation string)
}
