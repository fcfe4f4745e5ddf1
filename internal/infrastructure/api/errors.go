package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/bau-portal/internal/application/dto"
	"github.com/jhoicas/bau-portal/internal/domain"
)

// APIError respuesta no-2xx del backend con el sobre de error decodificado.
type APIError struct {
	Method   string
	Path     string
	Status   int
	Envelope dto.ErrorResponse
}

func (e *APIError) Error() string {
	msg := e.Envelope.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, msg)
}

// Is permite errors.Is contra los sentinels del dominio según el status HTTP.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrTransport:
		return true
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest && len(e.Envelope.FieldErrors) > 0
	}
	return false
}

// Message texto para mostrar al usuario; el del backend si viene.
func (e *APIError) Message() string {
	if e.Envelope.Message != "" {
		return e.Envelope.Message
	}
	return http.StatusText(e.Status)
}

// transportError fallo de red o de decodificación antes de tener respuesta útil.
type transportError struct {
	op  string
	err error
}

func (e *transportError) Error() string { return "api: " + e.op + ": " + e.err.Error() }
func (e *transportError) Unwrap() []error {
	return []error{domain.ErrTransport, e.err}
}

// AsAPIError atajo para errors.As.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
