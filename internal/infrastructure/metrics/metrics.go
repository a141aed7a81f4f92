// Package metrics expone contadores Prometheus del motor de asignaciones, de la API
// HTTP y del tamaño de cada colección persistida.
package metrics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
)

var _ inventory.Metrics = (*Metrics)(nil)

// Subscriber fuente de notificaciones de escritura (persistence.Database o un kv.Store).
type Subscriber interface {
	Subscribe(key string, fn kv.Listener) func()
}

// Metrics registro propio con las métricas de la aplicación.
type Metrics struct {
	registry *prometheus.Registry

	OperationsTotal     *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	StoreWritesTotal    *prometheus.CounterVec
	CollectionItems     *prometheus.GaugeVec
	SessionActive       prometheus.Gauge
}

// New crea el registro con los collectors de Go y de proceso.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}
	m.OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_operations_total",
			Help:      "Operaciones del motor de asignaciones por resultado",
		},
		[]string{"operation", "result"},
	)
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)
	m.StoreWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Escrituras confirmadas por colección",
		},
		[]string{"collection"},
	)
	m.CollectionItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collection_items",
			Help:      "Elementos en cada colección tras la última escritura",
		},
		[]string{"collection"},
	)
	m.SessionActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_active",
		Help:      "1 si hay un usuario con sesión (currentUserId)",
	})

	registry.MustRegister(
		m.OperationsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StoreWritesTotal,
		m.CollectionItems,
		m.SessionActive,
	)
	return m
}

// Registry devuelve el registro de Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation cuenta una operación del motor.
func (m *Metrics) ObserveOperation(operation, result string) {
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
}

// Watch se suscribe a todas las colecciones. Devuelve la función para cancelar.
// La clave currentUserId alimenta SessionActive; el resto, CollectionItems.
func (m *Metrics) Watch(sub Subscriber, sessionKey string) func() {
	return sub.Subscribe("*", func(key string, payload []byte) {
		m.StoreWritesTotal.WithLabelValues(key).Inc()
		if key == sessionKey {
			var id *string
			if err := json.Unmarshal(payload, &id); err == nil && id != nil && *id != "" {
				m.SessionActive.Set(1)
			} else {
				m.SessionActive.Set(0)
			}
			return
		}
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return
		}
		m.CollectionItems.WithLabelValues(key).Set(float64(len(items)))
	})
}

// Handler handler HTTP estándar para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// FiberHandler adapta Handler a Fiber.
func (m *Metrics) FiberHandler() fiber.Handler {
	return adaptor.HTTPHandler(m.Handler())
}

// Middleware registra conteo y duración por ruta (plantilla, no path concreto).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
