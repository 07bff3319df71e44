package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/go-catalog/internal/server"
)

// TracingMiddleware installs New Relic transactions and decorates them
// with catalog attributes. Both middlewares are pass-through when New
// Relic is disabled.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

// NewRelicMiddleware starts one transaction per request.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing tags the transaction with the route, request id and
// product id, and records the status the client will actually receive.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			for key, value := range requestAttributes(c) {
				txn.AddAttribute(key, value)
			}

			err := next(c)

			status := c.Response().Status
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				status = statusFor(err)
			}
			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}

func requestAttributes(c echo.Context) map[string]string {
	attrs := map[string]string{
		"http.route":      c.Path(),
		"http.real_ip":    c.RealIP(),
		"http.user_agent": c.Request().UserAgent(),
	}
	if id := GetRequestID(c); id != "" {
		attrs["request.id"] = id
	}
	if id := c.Param("id"); id != "" {
		attrs["product.id"] = id
	}
	return attrs
}
