// Package validation holds request-level validators shared by the transport
// layer.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	apperrors "go-performative-rater/internal/errors"
)

// URLRules defines configurable constraints for image URL validation.
type URLRules struct {
	MaxLength      int
	AllowedSchemes []string
	// BlockLoopback rejects URLs resolving to obvious loopback hosts so
	// the fetcher cannot be pointed at the service itself.
	BlockLoopback bool
}

// DefaultURLRules returns the constraints used in production.
func DefaultURLRules() URLRules {
	return URLRules{
		MaxLength:      2048,
		AllowedSchemes: []string{"http", "https"},
		BlockLoopback:  true,
	}
}

// URLValidator checks image URLs before they reach the fetcher.
type URLValidator struct {
	rules URLRules
}

// NewURLValidator creates a validator with the default rules.
func NewURLValidator() *URLValidator {
	return &URLValidator{rules: DefaultURLRules()}
}

// NewURLValidatorWithRules creates a validator with custom rules.
func NewURLValidatorWithRules(rules URLRules) *URLValidator {
	return &URLValidator{rules: rules}
}

// Validate returns nil when rawURL is acceptable as an image source.
func (v *URLValidator) Validate(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return apperrors.NewValidationError("image URL is required", nil)
	}
	if len(trimmed) > v.rules.MaxLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("image URL exceeds %d characters", v.rules.MaxLength), nil)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return apperrors.NewValidationError("image URL is not parseable", err)
	}
	if !v.schemeAllowed(parsed.Scheme) {
		return apperrors.NewValidationError(
			fmt.Sprintf("image URL scheme %q is not allowed", parsed.Scheme), nil)
	}
	if parsed.Host == "" {
		return apperrors.NewValidationError("image URL has no host", nil)
	}
	if v.rules.BlockLoopback && isLoopbackHost(parsed.Hostname()) {
		return apperrors.NewValidationError("image URL points at a loopback address", nil)
	}
	return nil
}

func (v *URLValidator) schemeAllowed(scheme string) bool {
	for _, allowed := range v.rules.AllowedSchemes {
		if strings.EqualFold(scheme, allowed) {
			return true
		}
	}
	return false
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
