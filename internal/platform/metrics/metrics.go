package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector usa un registry propio: varios routers (tests) no chocan al registrar.
type Collector struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	DosageCalculations *prometheus.CounterVec
	BarcodeScans       *prometheus.CounterVec
	BarcodeConflicts   prometheus.Counter
}

func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"method", "route"}),

		DosageCalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dosage",
			Name:      "calculations_total",
			Help:      "Persisted dosage calculations; clamped=true when the daily ceiling applied.",
		}, []string{"clamped"}),

		BarcodeScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "barcode",
			Name:      "scans_total",
			Help:      "Barcode scans by result (hit, miss).",
		}, []string{"result"}),

		BarcodeConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "barcode",
			Name:      "conflicts_total",
			Help:      "Barcode writes rejected because the value is already registered.",
		}),
	}

	reg.MustRegister(
		c.RequestsTotal,
		c.RequestDuration,
		c.DosageCalculations,
		c.BarcodeScans,
		c.BarcodeConflicts,
	)
	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Los helpers aceptan receiver nil para que los handlers no tengan que chequear.

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) ObserveCalculation(clamped bool) {
	if c == nil {
		return
	}
	label := "false"
	if clamped {
		label = "true"
	}
	c.DosageCalculations.WithLabelValues(label).Inc()
}

func (c *Collector) ObserveScan(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.BarcodeScans.WithLabelValues(result).Inc()
}

func (c *Collector) ObserveConflict() {
	if c == nil {
		return
	}
	c.BarcodeConflicts.Inc()
}
