package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"go.uber.org/multierr"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeIdempotency   Code = "IDEMPOTENCY_KEY_REUSED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code surfaces over HTTP. When ExposeMessage is set
// the caller's message replaces PublicMessage in the response body, which is
// what lets the workflow agent read "No se encontró el soporte..." verbatim.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
	ExposeMessage  bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {http.StatusBadRequest, false, "solicitud inválida", true, true},
	CodeUnauthorized:  {http.StatusUnauthorized, false, "autenticación requerida", false, true},
	CodeForbidden:     {http.StatusForbidden, false, "acceso denegado", false, true},
	CodeNotFound:      {http.StatusNotFound, false, "recurso no encontrado", false, true},
	CodeConflict:      {http.StatusConflict, false, "conflicto detectado", false, true},
	CodeStateConflict: {http.StatusConflict, true, "el recurso fue modificado concurrentemente", true, true},
	CodeIdempotency:   {http.StatusConflict, false, "clave de idempotencia reutilizada", true, true},
	CodeInternal:      {http.StatusInternalServerError, true, "error interno del servidor", false, false},
	CodeDependency:    {http.StatusServiceUnavailable, true, "dependencia no disponible", true, false},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Status is the HTTP status err would be written with; untyped errors are 500.
func Status(err error) int {
	if typed := As(err); typed != nil {
		return MetadataFor(typed.Code()).HTTPStatus
	}
	return http.StatusInternalServerError
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Join combines errs under one code. Nil entries are dropped and nil is
// returned when nothing is left.
func Join(code Code, message string, errs ...error) error {
	combined := multierr.Combine(errs...)
	if combined == nil {
		return nil
	}
	return Wrap(code, combined, message).WithDetails(map[string]any{"errors": len(multierr.Errors(combined))})
}

// FieldErrors collects per-field validation messages keyed by JSON name.
type FieldErrors map[string]string

// Add records msg for field, keeping the first message per field.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Err returns a validation error carrying the fields, or nil when empty.
func (f FieldErrors) Err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return New(CodeValidation, message).WithDetails(map[string]string(f))
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsCode reports whether err carries the given typed code anywhere in its chain.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
