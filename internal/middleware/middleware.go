// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request-scoped logging, CORS, New Relic
// tracing, rate limiting, panic recovery and the final error funnel.
package middleware
