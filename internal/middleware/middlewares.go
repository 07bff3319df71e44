package middleware

import (
	"github.com/deppfellow/go-catalog/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server
// so the router receives them as a single value.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and
	// the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer stores a request-scoped logger in the echo context.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic transactions and custom attributes.
	Tracing *TracingMiddleware

	// RateLimit throttles clients per IP when configured.
	RateLimit *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components once.
//
// When New Relic is not configured the tracing middleware degrades
// into a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
