package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buddyscript_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ImageUploadFailures counts image-host upload failures. Uploads are
	// partial-success: a failure here never fails the enclosing request.
	ImageUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buddyscript_image_upload_failures_total",
		Help: "Total number of failed uploads to the external image host",
	})
)

// InitMetrics creates the Prometheus middleware registered under the given
// service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the Prometheus middleware as a plain fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
