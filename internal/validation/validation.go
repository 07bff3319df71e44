// Package validation checks decoded command payloads.
//
// It uses the `validator` library to enforce rules (like
// required fields or maximum lengths) defined in struct tags
// and turns validation errors into field-level messages that
// are attached to the command service's errors.
package validation
