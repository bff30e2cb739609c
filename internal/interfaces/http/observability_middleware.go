package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

// RequestObserver registra cada petición en el log y en las métricas HTTP.
// La métrica usa la plantilla de la ruta (/api/followups/:id) para acotar la cardinalidad.
func RequestObserver(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		elapsed := time.Since(start)
		m.ObserveHTTP(c.Method(), c.Route().Path, status, elapsed)

		ev := log.Debug()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return err
	}
}
