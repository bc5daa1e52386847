// Package vision talks to the remote image classification provider and
// wraps it in the retry and circuit-breaker policy the rest of the service
// depends on.
package vision

import (
	"context"

	"go-performative-rater/pkg/models"
)

// Classification is one provider response: ranked content labels plus any
// OCR text spans found in the image.
type Classification struct {
	Labels    []models.Label
	TextSpans []models.TextSpan
}

// Provider performs a single classification attempt against the remote
// service. Implementations must honor ctx cancellation and return errors
// from the internal/errors taxonomy so the resilient client can decide
// whether a retry is worthwhile.
type Provider interface {
	Classify(ctx context.Context, image []byte) (*Classification, error)
}
