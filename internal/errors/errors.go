package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies errors at their point of origin so that retry and
// transport logic can pattern-match on the kind instead of sniffing
// message strings.
type Kind string

const (
	// KindInvalidInput marks a caller mistake (malformed request input).
	KindInvalidInput Kind = "invalid_input"
	// KindValidation marks a failed request-level validation (e.g. URL).
	KindValidation Kind = "validation"
	// KindUnauthenticated marks missing or invalid provider credentials.
	KindUnauthenticated Kind = "unauthenticated"
	// KindPermissionDenied marks a provider authorization failure.
	KindPermissionDenied Kind = "permission_denied"
	// KindInvalidArgument marks a request the provider rejected outright.
	KindInvalidArgument Kind = "invalid_argument"
	// KindQuotaExceeded marks an exhausted provider quota.
	KindQuotaExceeded Kind = "quota_exceeded"
	// KindTimeout marks a call that exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindUnavailable marks a transient provider failure.
	KindUnavailable Kind = "unavailable"
	// KindCircuitOpen marks a call rejected by the open circuit breaker
	// without reaching the provider.
	KindCircuitOpen Kind = "circuit_open"
	// KindNetwork marks a failure fetching a remote resource.
	KindNetwork Kind = "network"
	// KindInternal marks everything else.
	KindInternal Kind = "internal"
)

// AppError is a structured application error carrying a Kind and the HTTP
// status the transport layer should map it to.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether a later identical call could plausibly succeed
// without configuration changes. Timeout and Unavailable are retried by the
// resilient client; CircuitOpen clears after the breaker's reset timeout.
func (e *AppError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindUnavailable, KindCircuitOpen:
		return true
	default:
		return false
	}
}

func newError(kind Kind, status int, message string, cause error) *AppError {
	return &AppError{
		Kind:       kind,
		Message:    message,
		StatusCode: status,
		Cause:      cause,
	}
}

// NewInvalidInputError creates an error for malformed caller input
func NewInvalidInputError(message string, cause error) *AppError {
	return newError(KindInvalidInput, http.StatusBadRequest, message, cause)
}

// NewValidationError creates a request validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(KindValidation, http.StatusBadRequest, message, cause)
}

// NewUnauthenticatedError creates an error for missing or rejected provider credentials
func NewUnauthenticatedError(message string, cause error) *AppError {
	return newError(KindUnauthenticated, http.StatusInternalServerError, message, cause)
}

// NewPermissionDeniedError creates an error for provider authorization failures
func NewPermissionDeniedError(message string, cause error) *AppError {
	return newError(KindPermissionDenied, http.StatusInternalServerError, message, cause)
}

// NewInvalidArgumentError creates an error for requests the provider rejected
func NewInvalidArgumentError(message string, cause error) *AppError {
	return newError(KindInvalidArgument, http.StatusBadRequest, message, cause)
}

// NewQuotaExceededError creates an error for exhausted provider quota
func NewQuotaExceededError(message string, cause error) *AppError {
	return newError(KindQuotaExceeded, http.StatusInternalServerError, message, cause)
}

// NewTimeoutError creates an error for calls that exceeded their deadline
func NewTimeoutError(message string, cause error) *AppError {
	return newError(KindTimeout, http.StatusGatewayTimeout, message, cause)
}

// NewUnavailableError creates an error for transient provider failures
func NewUnavailableError(message string, cause error) *AppError {
	return newError(KindUnavailable, http.StatusServiceUnavailable, message, cause)
}

// NewCircuitOpenError creates a synthetic error for calls rejected while the
// circuit breaker is open
func NewCircuitOpenError(message string, cause error) *AppError {
	return newError(KindCircuitOpen, http.StatusServiceUnavailable, message, cause)
}

// NewNetworkError creates an error for failed remote fetches
func NewNetworkError(message string, cause error) *AppError {
	return newError(KindNetwork, http.StatusBadGateway, message, cause)
}

// NewInternalError creates a generic internal error
func NewInternalError(message string, cause error) *AppError {
	return newError(KindInternal, http.StatusInternalServerError, message, cause)
}

// KindOf extracts the Kind from an error chain, or KindInternal when the
// chain carries no AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind checks if the error chain carries an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsRetryable reports whether the error chain carries a retryable AppError
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Retryable()
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
