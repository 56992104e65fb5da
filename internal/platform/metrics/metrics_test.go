package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.AmortizationCreated("french")
	r.AmortizationCreated("french")
	r.ScheduleGenerated("linear", 12)
	r.PaymentRecorded("french", 1027.71)
	r.PaymentRecorded("french", 0)
	r.LedgerPosted(true)
	r.LedgerPosted(false)
	r.LedgerPosted(false)
	r.ConflictRetried("record_payment")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.created.WithLabelValues("french")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.schedules.WithLabelValues("linear")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.payments.WithLabelValues("french")))
	assert.InDelta(t, 1027.71, testutil.ToFloat64(r.paymentAmount.WithLabelValues("french")), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ledgerPostings.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ledgerPostings.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.conflictRetries.WithLabelValues("record_payment")))
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.ObserveHTTPRequest("/api/v1/amortizations/:id", http.MethodGet, http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `amortization_http_requests_total{method="GET",route="/api/v1/amortizations/:id",status="200"} 1`)
	assert.Contains(t, body, "amortization_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
