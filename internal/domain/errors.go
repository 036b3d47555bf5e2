package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingType      = errors.New("missing content type")
	ErrUnsupportedType  = errors.New("unsupported content type")
	ErrMissingFields    = errors.New("missing or invalid fields")
	ErrInvalidColor     = errors.New("invalid color")
	ErrPayloadTooLong   = errors.New("payload too long")
	ErrLogoTooLarge     = errors.New("logo too large")
	ErrUnsupportedImage = errors.New("unsupported image")
)

// ValidationError reports a request that cannot be turned into a payload.
// Fields holds the offending request field names (JSON names) and Kind the
// requested content type as sent by the client.
type ValidationError struct {
	Kind   string
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingType):
		return `the field "type" is required`
	case errors.Is(e.Err, ErrUnsupportedType):
		return fmt.Sprintf("type %q is not supported", e.Kind)
	case len(e.Fields) > 0:
		return fmt.Sprintf("%s for %s: %s", e.Err, e.Kind, strings.Join(e.Fields, ", "))
	default:
		return e.Err.Error()
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// RenderError reports a failure while drawing or encoding the image.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Invalid builds a ValidationError for the given kind and fields.
func Invalid(kind string, err error, fields ...string) error {
	return &ValidationError{Kind: kind, Fields: fields, Err: err}
}

// RenderFailed wraps err as a RenderError for op.
func RenderFailed(op string, err error) error {
	return &RenderError{Op: op, Err: err}
}
