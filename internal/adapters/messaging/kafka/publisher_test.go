package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/amortization_manager/internal/core/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func headers(m kafkago.Message) map[string]string {
	out := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		out[h.Key] = string(h.Value)
	}
	return out
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := NewPublisher(Config{Topic: "amortizations"})
	assert.EqualError(t, err, "kafka: at least one broker is required")

	_, err = NewPublisher(Config{Brokers: []string{"kafka:9092"}})
	assert.EqualError(t, err, "kafka: topic is required")

	p, err := NewPublisher(Config{Brokers: []string{"kafka:9092"}, Topic: "amortizations"})
	require.NoError(t, err)
	assert.Equal(t, "amortizations", p.topic)
}

func TestPublish_EncodesEvents(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w, "amortizations")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(),
		domain.DomainEvent{EventID: "e-1", EventType: domain.EventPaymentRecorded, AggregateID: "amort-1", CompanyID: "C1", OccurredAt: at,
			Payload: map[string]any{"installment_number": 3}},
		domain.DomainEvent{EventID: "e-2", EventType: domain.EventAmortizationUpdated, AggregateID: "amort-1", CompanyID: "C1", OccurredAt: at},
	)
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	first := w.msgs[0]
	assert.Equal(t, "amort-1", string(first.Key))
	assert.Equal(t, at, first.Time)
	assert.Equal(t, map[string]string{
		"event_type":   domain.EventPaymentRecorded,
		"event_id":     "e-1",
		"content-type": "application/json",
	}, headers(first))

	var decoded domain.DomainEvent
	require.NoError(t, json.Unmarshal(first.Value, &decoded))
	assert.Equal(t, "C1", decoded.CompanyID)
	assert.EqualValues(t, 3, decoded.Payload["installment_number"])
}

func TestPublish_NoEventsIsNoop(t *testing.T) {
	w := &recordingWriter{err: errors.New("should not be called")}
	assert.NoError(t, newPublisher(w, "amortizations").Publish(context.Background()))
}

func TestPublish_WrapsWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := newPublisher(&recordingWriter{err: boom}, "amortizations")

	err := p.Publish(context.Background(), domain.DomainEvent{EventID: "e-1", AggregateID: "amort-1"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "kafka publish to amortizations")
}

func TestClose(t *testing.T) {
	w := &recordingWriter{}
	require.NoError(t, newPublisher(w, "amortizations").Close())
	assert.True(t, w.closed)
}
