// Package metrics colectores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores registrados en un Registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	movementsTotal      *prometheus.CounterVec
	movementUnits       *prometheus.CounterVec
	rejectionsTotal     *prometheus.CounterVec
}

// New registra los colectores con el prefijo dado (ej. "stock_ledger").
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	name := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "_" + s
	}

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: name("http_requests_total"),
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name("http_request_duration_seconds"),
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		movementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: name("movements_total"),
			Help: "Stock movements appended to the ledger",
		}, []string{"type", "reason_kind"}),
		movementUnits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: name("movement_units_total"),
			Help: "Units moved by appended stock movements",
		}, []string{"type"}),
		rejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: name("movement_rejections_total"),
			Help: "Stock movements rejected before reaching the ledger",
		}, []string{"code"}),
	}
}

// ObserveHTTP registra una petición atendida. path debe ser la ruta de la plantilla, no la URL.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// MovementAppended cuenta un movimiento aceptado.
func (m *Metrics) MovementAppended(movementType, reasonKind string, quantity int64) {
	m.movementsTotal.WithLabelValues(movementType, reasonKind).Inc()
	m.movementUnits.WithLabelValues(movementType).Add(float64(quantity))
}

// MovementRejected cuenta un rechazo por código de error.
func (m *Metrics) MovementRejected(code string) {
	m.rejectionsTotal.WithLabelValues(code).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer acceso al registry (tests).
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
