// Package apierror provides standardized error response structures for the API
// together with the domain error kinds services return. Handlers translate the
// kinds into status codes so internal details (DB errors, stack traces) never
// reach clients.
package apierror

import (
	"errors"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Domain error kinds. Match with errors.Is.
var (
	ErrValidacion   = errors.New("datos invalidos")
	ErrNoEncontrado = errors.New("recurso no encontrado")
	ErrConflicto    = errors.New("conflicto")
	ErrProhibido    = errors.New("operacion no permitida")
	ErrSolicitud    = errors.New("solicitud invalida")
)

// Error carries a client-safe message and one of the kinds above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Validacion(msg string) error   { return &Error{Kind: ErrValidacion, Msg: msg} }
func NoEncontrado(msg string) error { return &Error{Kind: ErrNoEncontrado, Msg: msg} }
func Conflicto(msg string) error    { return &Error{Kind: ErrConflicto, Msg: msg} }
func Prohibido(msg string) error    { return &Error{Kind: ErrProhibido, Msg: msg} }
func Solicitud(msg string) error    { return &Error{Kind: ErrSolicitud, Msg: msg} }

// Status maps err to an HTTP status. Errors without a kind are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidacion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrConflicto):
		return http.StatusConflict
	case errors.Is(err, ErrProhibido):
		return http.StatusForbidden
	case errors.Is(err, ErrSolicitud):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe text for err, or fallback when err has no kind.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}
