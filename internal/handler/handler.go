// Package handler is the first layer after the router.
//
// It extracts path parameters, decodes request bodies, calls the
// query or command capability and turns the result into a Response.
// Client input problems are answered here (400 / 404 with empty
// bodies); every capability failure is returned unchanged to the
// global error handler.
package handler
