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
		Name: "pinpoint_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// WeatherLookups counts weather lookups by provider and outcome
	// (hit, miss, degraded).
	WeatherLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pinpoint_weather_lookups_total",
		Help: "Total number of weather lookups by provider and cache outcome",
	}, []string{"provider", "outcome"})
)

// InitMetrics sets up the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumenting handler for the Fiber app.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
