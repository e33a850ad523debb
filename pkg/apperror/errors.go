package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Each kind maps to one HTTP status and code.
type Kind string

const (
	KindNotFound               Kind = "NOT_FOUND"
	KindValidation             Kind = "VALIDATION_FAILED"
	KindInvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	KindVehicleUnavailable     Kind = "VEHICLE_UNAVAILABLE"
	KindInvalidAuthToken       Kind = "INVALID_AUTH_TOKEN"
	KindUnauthorized           Kind = "UNAUTHORIZED"
	KindForbidden              Kind = "FORBIDDEN"
	KindConflict               Kind = "CONFLICT"
	KindInternal               Kind = "INTERNAL_ERROR"
)

// Error is the typed error surfaced by services.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HTTPStatus returns the status code for the error kind.
func (e *Error) HTTPStatus() int {
	return StatusFor(e.Kind)
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrValidation             = &Error{Kind: KindValidation}
	ErrInvalidStateTransition = &Error{Kind: KindInvalidStateTransition}
	ErrVehicleUnavailable     = &Error{Kind: KindVehicleUnavailable}
	ErrInvalidAuthToken       = &Error{Kind: KindInvalidAuthToken}
	ErrUnauthorized           = &Error{Kind: KindUnauthorized}
	ErrForbidden              = &Error{Kind: KindForbidden}
	ErrConflict               = &Error{Kind: KindConflict}
)

func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindVehicleUnavailable:
		return http.StatusBadRequest
	case KindInvalidStateTransition, KindConflict:
		return http.StatusConflict
	case KindInvalidAuthToken, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(resource string, key any) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %v not found", resource, key),
		Details: map[string]any{"resource": resource},
	}
}

func Validation(message string, fields map[string]string) error {
	var details map[string]any
	if len(fields) > 0 {
		details = make(map[string]any, len(fields))
		for k, v := range fields {
			details[k] = v
		}
	}
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func VehicleUnavailable(plate string) error {
	return &Error{
		Kind:    KindVehicleUnavailable,
		Message: "vehicle is not available for the selected period",
		Details: map[string]any{"vehicle_plate": plate},
	}
}

func InvalidAuthToken(message string) error {
	return &Error{Kind: KindInvalidAuthToken, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From classifies any error. Unknown errors become KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Message == "" {
			// sentinel reached through a wrapping error: keep the outer message
			return &Error{Kind: appErr.Kind, Message: err.Error(), Err: err}
		}
		return appErr
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

func InvalidState(message string) error {
	return &Error{Kind: KindInvalidStateTransition, Message: message}
}
