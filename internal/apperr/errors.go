package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type ErrorType int

const (
	ErrConfig ErrorType = iota
	ErrInputType
	ErrTranslation
	ErrParse
	ErrEmptyResponse
	ErrValidation
	ErrNotFound
	ErrUnknown
)

// Error is the classified error surfaced across package boundaries.
// Message is always safe to show to a user; Cause is kept for logs and
// errors.Unwrap but is never part of Error().
type Error struct {
	Type    ErrorType
	Message string
	Context map[string]any
	Cause   error
}

func New(errorType ErrorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
	}
}

func Wrap(cause error, errorType ErrorType, message string) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)}

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ctxParts := make([]string, 0, len(keys))
		for _, k := range keys {
			ctxParts = append(ctxParts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		parts = append(parts, fmt.Sprintf("context: %s", strings.Join(ctxParts, ", ")))
	}

	return strings.Join(parts, " | ")
}

// Detail is Error() plus the underlying cause, for operator logs only.
func (e *Error) Detail() string {
	if e.Cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s | cause: %v", e.Error(), e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) WithContext(key string, value any) *Error {
	e.Context[key] = value
	return e
}

func (t ErrorType) String() string {
	switch t {
	case ErrConfig:
		return "Config"
	case ErrInputType:
		return "InputType"
	case ErrTranslation:
		return "Translation"
	case ErrParse:
		return "Parse"
	case ErrEmptyResponse:
		return "EmptyResponse"
	case ErrValidation:
		return "Validation"
	case ErrNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Advice returns a remediation hint for the given error type
func Advice(t ErrorType) string {
	switch t {
	case ErrConfig:
		return "Please check that configuration files or environment variables are set correctly"
	case ErrInputType:
		return "Please select a SubRip (.srt) subtitle file"
	case ErrTranslation:
		return "Please check if the API key is correct, network connectivity is normal, or review the API service status"
	case ErrParse:
		return "The service answered but not with SRT content; try translating again"
	case ErrEmptyResponse:
		return "The service returned no content; try again or choose another model"
	case ErrValidation:
		return "Please verify the request parameters"
	case ErrNotFound:
		return "Please reload the session and try again"
	default:
		return "Please review detailed error information in the server logs"
	}
}

// TypeOf returns the classified type of err, or ErrUnknown.
func TypeOf(err error) ErrorType {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrUnknown
}

func IsType(err error, errorType ErrorType) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Message returns the user-facing message of err. Unclassified errors
// collapse to a generic message so their text never reaches a user.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unknown error occurred."
}
