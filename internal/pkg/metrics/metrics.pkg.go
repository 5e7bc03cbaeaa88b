package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "basseinpay"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Orders    *prometheus.CounterVec
	Audits    *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewServerMetrics registers on a private registry so several instances
// can coexist, e.g. in tests.
func NewServerMetrics(service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "orders_total",
		Help:      "Order submissions by type and outcome.",
	}, []string{"type", "outcome"})
	audits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: service,
		Name:      "slip_audits_total",
		Help:      "Slip audits by result.",
	}, []string{"status"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		requests,
		latency,
		orders,
		audits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &ServerMetrics{
		Requests:  requests,
		LatencyMS: latency,
		Orders:    orders,
		Audits:    audits,
		registry:  registry,
	}
}

// ObserveOrder is safe on a nil receiver.
func (m *ServerMetrics) ObserveOrder(orderType, outcome string) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(orderType, outcome).Inc()
}

func (m *ServerMetrics) ObserveAudit(status string) {
	if m == nil {
		return
	}
	m.Audits.WithLabelValues(status).Inc()
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Registry() *prometheus.Registry {
	return m.registry
}
