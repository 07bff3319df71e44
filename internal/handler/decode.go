package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
)

var errNullBody = errors.New("request body is null")

// pathParam returns the named path parameter. ok is false when the
// route did not bind the parameter or bound an empty segment.
func pathParam(c echo.Context, name string) (value string, ok bool) {
	value = c.Param(name)
	return value, value != ""
}

// decodeBody decodes the JSON request body into a new T. The request's
// Content-Type is not consulted.
//
// The body must hold exactly one JSON value of T's shape: an empty body,
// malformed JSON, a type mismatch, a literal null or anything after the
// first value are all decode failures. The payload is not validated here.
func decodeBody[T any](c echo.Context) (T, error) {
	var zero T

	dec := json.NewDecoder(c.Request().Body)

	var payload *T
	if err := dec.Decode(&payload); err != nil {
		return zero, fmt.Errorf("decode request body: %w", err)
	}
	if payload == nil {
		return zero, errNullBody
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return zero, errors.New("decode request body: unexpected data after JSON value")
	}
	return *payload, nil
}
