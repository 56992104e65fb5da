package messaging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/SscSPs/amortization_manager/internal/adapters/messaging"
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPublisher_LogsEachEvent(t *testing.T) {
	var buf bytes.Buffer
	p := messaging.NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := p.Publish(context.Background(), domain.DomainEvent{
		EventID:     "e-1",
		EventType:   domain.EventAmortizationCreated,
		AggregateID: "amort-1",
		CompanyID:   "C1",
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Domain event", line["msg"])
	assert.Equal(t, domain.EventAmortizationCreated, line["event_type"])
	assert.Equal(t, "amort-1", line["amortization_id"])
}
