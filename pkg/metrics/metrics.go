// Package metrics expone las métricas Prometheus de la API de cobranza.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores. Un *Metrics nil es válido y no registra nada,
// así los casos de uso pueden construirse sin métricas en tests.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbOperationDuration *prometheus.HistogramVec
	followupOperations  *prometheus.CounterVec
	exportsTotal        *prometheus.CounterVec
}

// New crea y registra los colectores con el prefijo indicado (ej. "cobranza").
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		dbOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duración de las operaciones de base de datos en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation_type"}),
		followupOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_followup_operations_total",
			Help: "Operaciones sobre seguimientos de cobranza",
		}, []string{"operation"}),
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_exports_total",
			Help: "Reportes exportados por tipo y formato",
		}, []string{"report", "format"}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbOperationDuration,
		m.followupOperations,
		m.exportsTotal,
	)
	return m
}

// Handler devuelve el handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP registra una petición HTTP terminada.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// TrackDBOperation devuelve una función que registra la duración de una operación de DB.
//
//	defer m.TrackDBOperation("followup_upsert")(time.Now())
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.dbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordFollowupOperation incrementa el contador de la operación (created, updated, deleted, reopened).
func (m *Metrics) RecordFollowupOperation(operation string) {
	if m == nil {
		return
	}
	m.followupOperations.WithLabelValues(operation).Inc()
}

// RecordExport incrementa el contador de exportaciones.
func (m *Metrics) RecordExport(report, format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(report, format).Inc()
}
