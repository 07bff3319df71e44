package handler

import (
	"time"

	"github.com/deppfellow/go-catalog/internal/middleware"
	"github.com/deppfellow/go-catalog/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers so they can reach the config and
// the shared resources on *server.Server.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// DispatchFunc handles one request.
//
// It returns either a Response (success or a client-facing outcome such
// as 400/404) or an error, which is fatal for the request and goes to
// the global error handler untouched.
type DispatchFunc func(c echo.Context) (*Response, error)

// Handle wraps a DispatchFunc with structured logging, timing and New
// Relic attributes, then writes the Response.
//
//	r.GET("/items", Handle("list_products", h.ListProducts))
func Handle(operation string, dispatch DispatchFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		logger := middleware.GetLogger(c).With().
			Str("operation", operation).
			Str("route", c.Path()).
			Logger()

		txn := newrelic.FromContext(c.Request().Context())
		if txn != nil {
			txn.AddAttribute("handler.name", operation)
		}

		logger.Debug().Msg("handling request")

		response, err := dispatch(c)
		duration := time.Since(start)

		if err != nil {
			logger.Error().
				Err(err).
				Dur("handler_duration", duration).
				Msg("handler execution failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("handler.status", "error")
				txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
			}
			return err
		}

		if txn != nil {
			txn.AddAttribute("handler.status", "success")
			txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
			txn.AddAttribute("response.status", response.Status)
		}

		logger.Debug().
			Int("status", response.Status).
			Dur("handler_duration", duration).
			Msg("request handled")

		return response.Write(c)
	}
}
