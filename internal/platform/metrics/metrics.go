// Package metrics exposes Prometheus collectors for the amortization service and its HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/amortization_manager/internal/core/ports/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amortization"

// Recorder implements portssvc.MetricsRecorder on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	created          *prometheus.CounterVec
	schedules        *prometheus.CounterVec
	installments     *prometheus.HistogramVec
	payments         *prometheus.CounterVec
	paymentAmount    *prometheus.CounterVec
	ledgerPostings   *prometheus.CounterVec
	conflictRetries  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpRequestTimes *prometheus.HistogramVec
}

var _ portssvc.MetricsRecorder = (*Recorder)(nil)

// NewRecorder registers all collectors, plus the Go and process collectors, on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "created_total",
			Help: "Amortizations created, by method.",
		}, []string{"method"}),
		schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "schedules_generated_total",
			Help: "Installment schedules generated, by method.",
		}, []string{"method"}),
		installments: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "schedule_installments",
			Help:    "Number of installments per generated schedule.",
			Buckets: []float64{1, 6, 12, 24, 36, 60, 120, 360, 999},
		}, []string{"method"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payments_total",
			Help: "Installment payments recorded, by method.",
		}, []string{"method"}),
		paymentAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payment_amount_total",
			Help: "Sum of recorded payment amounts, by method.",
		}, []string{"method"}),
		ledgerPostings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "ledger_postings_total",
			Help: "Payments posted to the external ledger, by outcome.",
		}, []string{"outcome"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "conflict_retries_total",
			Help: "Read-modify-write retries caused by concurrent modification.",
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests, by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency, by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.created, r.schedules, r.installments, r.payments, r.paymentAmount,
		r.ledgerPostings, r.conflictRetries, r.httpRequests, r.httpRequestTimes,
	)
	return r
}

func (r *Recorder) AmortizationCreated(method string) {
	r.created.WithLabelValues(method).Inc()
}

func (r *Recorder) ScheduleGenerated(method string, installments int) {
	r.schedules.WithLabelValues(method).Inc()
	r.installments.WithLabelValues(method).Observe(float64(installments))
}

func (r *Recorder) PaymentRecorded(method string, amount float64) {
	r.payments.WithLabelValues(method).Inc()
	if amount > 0 {
		r.paymentAmount.WithLabelValues(method).Add(amount)
	}
}

func (r *Recorder) LedgerPosted(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	r.ledgerPostings.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ConflictRetried(operation string) {
	r.conflictRetries.WithLabelValues(operation).Inc()
}

// ObserveHTTPRequest records one served request. route is the matched pattern, not the raw path.
func (r *Recorder) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpRequestTimes.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
