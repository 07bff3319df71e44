package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is a fully built HTTP answer.
//
// Building a Response never writes anything, so a serialization failure
// can still be reported as an error before the client sees a status.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Empty is a response without a body, e.g. 204, 400 or 404.
func Empty(status int) *Response {
	return &Response{Status: status, Header: http.Header{}}
}

// JSON serializes v and returns a response with Content-Type application/json.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serialize response body: %w", err)
	}

	header := http.Header{}
	header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return &Response{Status: status, Header: header, Body: body}, nil
}

// WithHeader sets a header and returns r.
func (r *Response) WithHeader(key, value string) *Response {
	r.Header.Set(key, value)
	return r
}

// Write sends the response through echo.
func (r *Response) Write(c echo.Context) error {
	header := c.Response().Header()
	for key, values := range r.Header {
		for _, v := range values {
			header.Add(key, v)
		}
	}

	if len(r.Body) == 0 {
		return c.NoContent(r.Status)
	}

	c.Response().WriteHeader(r.Status)
	_, err := c.Response().Write(r.Body)
	return err
}
