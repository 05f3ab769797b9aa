package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of the domain that raised it
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus is used when an error is built without a registered code
var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeAuthorization: http.StatusUnauthorized,
	TypeConflict:      http.StatusConflict,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeInternal:      http.StatusInternalServerError,
	TypeExternal:      http.StatusBadGateway,
}

// HTTPStatusFor returns the default HTTP status of an error type
func HTTPStatusFor(t Type) int {
	if status, ok := defaultStatus[t]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ============================================================================
// Error
// ============================================================================

// Error is the structured error returned by services and handlers
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New creates an error that is not bound to a registry
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: HTTPStatusFor(t),
		Message:    message,
	}
}

// Wrap wraps a foreign error into an *Error of the given type.
// Wrapping an *Error keeps its code and status and only prefixes the message.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Code:       existing.Code,
			Type:       existing.Type,
			HTTPStatus: existing.HTTPStatus,
			Message:    message + ": " + existing.Message,
			Details:    copyDetails(existing.Details),
			Cause:      err,
		}
	}

	e := New(message, t)
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail returns a copy of the error with an extra detail attached
func (e *Error) WithDetail(key string, value any) *Error {
	clone := *e
	clone.Details = copyDetails(e.Details)
	if clone.Details == nil {
		clone.Details = make(map[string]any, 1)
	}
	clone.Details[key] = value
	return &clone
}

// WithCause returns a copy of the error carrying the underlying cause
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.Details = copyDetails(e.Details)
	clone.Cause = err
	return &clone
}

// ToHTTPResponse renders the error body sent to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

func copyDetails(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// IsType reports whether any error in err's chain is an *Error of type t
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsCode reports whether any error in err's chain carries the given code
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code.String()
	}
	return false
}

// ============================================================================
// Registry
// ============================================================================

// Code identifies a registered error inside a domain registry
type Code string

func (c Code) String() string { return string(c) }

type definition struct {
	t       Type
	status  int
	message string
}

// Registry holds the error codes of one domain, prefixed with its name
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: code %s registered twice", full))
	}
	r.defs[full] = definition{t: t, status: httpStatus, message: message}
	return full
}

// New builds an *Error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code.String(),
			Type:       TypeInternal,
			HTTPStatus: http.StatusInternalServerError,
			Message:    "unregistered error code",
		}
	}

	return &Error{
		Code:       code.String(),
		Type:       def.t,
		HTTPStatus: def.status,
		Message:    def.message,
	}
}

// NewWithCause builds an *Error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}
