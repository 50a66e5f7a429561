package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/observability"
)

// Observability attaches Prometheus metrics and structured latency
// logging for the GraphQL endpoint.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		if !strings.HasPrefix(c.Path(), "/graphql") {
			return err
		}

		operation := "unknown"
		if value := c.Locals("graphql_operation"); value != nil {
			if name, ok := value.(string); ok && name != "" {
				operation = name
			}
		}
		status := c.Response().StatusCode()

		observability.GraphQLRequests().WithLabelValues(operation, statusLabel(status)).Inc()
		observability.GraphQLLatency().WithLabelValues(operation).Observe(duration.Seconds())
		if status >= fiber.StatusBadRequest {
			observability.GraphQLErrors().WithLabelValues(operation).Inc()
		}

		requestLogger := logger.With().
			Str("correlation_id", GetCorrelationID(c)).
			Str("operation", operation).
			Int("status", status).
			Float64("latency_ms", float64(duration)/float64(time.Millisecond)).
			Logger()

		switch {
		case status >= fiber.StatusInternalServerError:
			requestLogger.Error().Msg("graphql request failed")
		case status >= fiber.StatusBadRequest:
			requestLogger.Warn().Msg("graphql request completed with client error")
		default:
			requestLogger.Info().Msg("graphql request completed")
		}

		return err
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	default:
		return "2xx"
	}
}
