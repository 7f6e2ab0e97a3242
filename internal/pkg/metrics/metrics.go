// Package metrics owns the Prometheus registry of the service and the
// collectors the adapters and handlers report to.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "manufacturing"

// Metrics groups the service collectors. A nil *Metrics is valid and records
// nothing, so tests can pass nil.
type Metrics struct {
	registry *prometheus.Registry

	outboundRequests *prometheus.CounterVec
	outboundDuration *prometheus.HistogramVec
	fulfillments     *prometheus.CounterVec
	synthesized      *prometheus.CounterVec
	jobRuns          *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		outboundRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "requests_total",
			Help:      "Outbound HTTP attempts by target, operation and status code.",
		}, []string{"target", "operation", "code"}),
		outboundDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outbound",
			Name:      "request_duration_seconds",
			Help:      "Outbound HTTP attempt latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"target", "operation"}),
		fulfillments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "warehouse",
			Name:      "fulfillments_total",
			Help:      "Warehouse order fulfillment attempts by outcome.",
		}, []string{"outcome"}),
		synthesized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "synthesis",
			Name:      "control_orders_total",
			Help:      "Control orders synthesized from schedules by type and whether the number is a placeholder.",
		}, []string{"type", "degraded"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Background job executions by job and result.",
		}, []string{"job", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.outboundRequests,
		m.outboundDuration,
		m.fulfillments,
		m.synthesized,
		m.jobRuns,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOutbound records one outbound attempt. code is 0 for transport errors.
func (m *Metrics) ObserveOutbound(target, operation string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.outboundRequests.WithLabelValues(target, operation, strconv.Itoa(code)).Inc()
	m.outboundDuration.WithLabelValues(target, operation).Observe(elapsed.Seconds())
}

func (m *Metrics) IncFulfillment(outcome string) {
	if m == nil {
		return
	}
	m.fulfillments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncSynthesized(controlOrderType string, degraded bool) {
	if m == nil {
		return
	}
	m.synthesized.WithLabelValues(controlOrderType, strconv.FormatBool(degraded)).Inc()
}

func (m *Metrics) IncJobRun(job string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
}
