package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Services wrap these with fmt.Errorf("...: %w", Err...) so the
// HTTP boundary can map any failure to a status code without knowing which
// layer produced it.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("invalid state")
	ErrValidation    = errors.New("validation failed")
	ErrGateway       = errors.New("payment gateway failure")
	ErrUnimplemented = errors.New("not implemented")
)

// Validation tags a request binding or parsing failure as a validation
// error so the boundary maps it to 400.
func Validation(err error) error {
	return fmt.Errorf("%v: %w", err, ErrValidation)
}

// HTTPStatus maps an error chain to its transport status code. NotFound
// is reported as 404 rather than the blanket 400 of the legacy service.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrGateway):
		return http.StatusBadGateway
	case errors.Is(err, ErrUnimplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Label returns the short error label used in the wire error payload.
func Label(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not Found"
	case errors.Is(err, ErrValidation):
		return "Validation Error"
	case errors.Is(err, ErrConflict):
		return "Bad Request"
	case errors.Is(err, ErrGateway):
		return "Bad Gateway"
	case errors.Is(err, ErrUnimplemented):
		return "Not Implemented"
	default:
		return "Internal Server Error"
	}
}
