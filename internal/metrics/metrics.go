package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "volunteer_http_requests_total",
		Help: "HTTP requests by method, route pattern and status.",
	}, []string{"method", "path", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "volunteer_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// SlotAdjustments counts capacity mutations by outcome:
	// taken, restored, exhausted.
	SlotAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "volunteer_slot_adjustments_total",
		Help: "Post capacity adjustments by outcome.",
	}, []string{"outcome"})

	// CompensationFailures counts slot restorations that exhausted their
	// retries and were handed off as reconciliation tasks.
	CompensationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "volunteer_slot_compensation_failures_total",
		Help: "Slot restorations that gave up after retries.",
	})
)

// Middleware records request count and latency using the matched route
// pattern, so /posts/:id stays one series regardless of the id.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		path := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
