package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency per route pattern, so
// /admins/1 and /admins/2 share one series.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		method := c.Method()
		path := c.Route().Path
		code := strconv.Itoa(status)

		metrics.RequestCounter.WithLabelValues(method, path, code).Inc()
		metrics.RequestDuration.WithLabelValues(method, path, code).Observe(duration)
		return err
	}
}
