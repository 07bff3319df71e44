// Package errs defines the JSON error shape the service answers with
// when the hosting layer (the global error handler) has to render an error.
//
// Dispatch handlers never build these for client input problems: those are
// answered with empty 400/404 bodies. HTTPError is used for framework
// errors (unknown routes, rate limiting) and for the generic 500 that
// replaces every propagated subsystem failure.
package errs
