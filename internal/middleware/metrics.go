package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP collectors. Paths are recorded as route templates
// (/api/reports/:id) to keep label cardinality bounded.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of http request",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}

		path := c.Route().Path
		if path == "" || path == "/" {
			path = "unmatched"
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.requests.WithLabelValues(labels...).Inc()
		m.duration.WithLabelValues(labels...).Observe(duration)

		return err
	}
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusGatewayTimeout
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	if e, ok := apperror.As(err); ok {
		return StatusForKind(e.Kind)
	}
	return fiber.StatusInternalServerError
}

// StatusForKind maps a domain error kind to its HTTP status.
func StatusForKind(k apperror.Kind) int {
	switch k {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindAuthentication:
		return fiber.StatusUnauthorized
	case apperror.KindAuthorization:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindInternal:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}
