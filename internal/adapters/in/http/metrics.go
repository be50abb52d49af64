package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Requests   *prometheus.CounterVec
	LatencyMS  *prometheus.HistogramVec
	Operations *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the HTTP and order operation collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordering",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ordering",
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route"})
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordering",
		Subsystem: "orders",
		Name:      "operations_total",
		Help:      "Order operations by outcome.",
	}, []string{"operation", "result"})

	reg.MustRegister(requests, latency, operations)
	return &Metrics{Requests: requests, LatencyMS: latency, Operations: operations, gatherer: reg}
}

func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = statusFor(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}

// Observe counts one order operation, labelled "ok" or with the status its
// error maps to.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		status, _ := statusFor(err)
		result = strconv.Itoa(status)
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
