// Package messaging holds event publishers that do not need a broker.
package messaging

import (
	"context"
	"log/slog"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ portssvc.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...domain.DomainEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "Domain event",
			slog.String("event_id", e.EventID),
			slog.String("event_type", e.EventType),
			slog.String("amortization_id", e.AggregateID),
			slog.String("company_id", e.CompanyID),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
