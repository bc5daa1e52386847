package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		kind      Kind
		status    int
		retryable bool
	}{
		{"invalid input", NewInvalidInputError("bad", nil), KindInvalidInput, http.StatusBadRequest, false},
		{"validation", NewValidationError("bad url", nil), KindValidation, http.StatusBadRequest, false},
		{"unauthenticated", NewUnauthenticatedError("no key", nil), KindUnauthenticated, http.StatusInternalServerError, false},
		{"quota", NewQuotaExceededError("spent", nil), KindQuotaExceeded, http.StatusInternalServerError, false},
		{"timeout", NewTimeoutError("slow", nil), KindTimeout, http.StatusGatewayTimeout, true},
		{"unavailable", NewUnavailableError("down", nil), KindUnavailable, http.StatusServiceUnavailable, true},
		{"circuit open", NewCircuitOpenError("open", nil), KindCircuitOpen, http.StatusServiceUnavailable, true},
		{"network", NewNetworkError("unreachable", nil), KindNetwork, http.StatusBadGateway, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if tt.err.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode, tt.status)
			}
			if tt.err.Retryable() != tt.retryable {
				t.Errorf("retryable = %v, want %v", tt.err.Retryable(), tt.retryable)
			}
		})
	}
}

func TestHelpersTraverseWrappedChains(t *testing.T) {
	base := NewTimeoutError("slow", errors.New("tcp timeout"))
	wrapped := fmt.Errorf("classify: %w", base)

	if !IsKind(wrapped, KindTimeout) {
		t.Error("IsKind should find the AppError through wrapping")
	}
	if !IsRetryable(wrapped) {
		t.Error("IsRetryable should find the AppError through wrapping")
	}
	if got := GetStatusCode(wrapped); got != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", got)
	}
}

func TestPlainErrorsFallBackToInternal(t *testing.T) {
	err := errors.New("something else")

	if KindOf(err) != KindInternal {
		t.Errorf("kind = %s, want internal", KindOf(err))
	}
	if IsRetryable(err) {
		t.Error("plain errors are not retryable")
	}
	if GetStatusCode(err) != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", GetStatusCode(err))
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := NewNetworkError("fetch failed", errors.New("connection refused"))
	if got := err.Error(); got != "network: fetch failed (caused by: connection refused)" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, err.Cause) {
		t.Error("Unwrap should expose the cause")
	}
}
