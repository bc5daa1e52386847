package vision

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/logger"
	"go-performative-rater/pkg/models"
)

// GoogleProvider classifies images through the Cloud Vision REST API,
// requesting label detection and text detection in one batch call.
type GoogleProvider struct {
	service    *visionapi.Service
	maxResults int64
}

// NewGoogleProvider creates a provider authenticated with an API key.
func NewGoogleProvider(ctx context.Context, apiKey string, maxResults int64) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, apperrors.NewUnauthenticatedError("vision API key is not configured", nil)
	}
	service, err := visionapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create vision service", err)
	}
	if maxResults <= 0 {
		maxResults = 20
	}
	return &GoogleProvider{service: service, maxResults: maxResults}, nil
}

func (p *GoogleProvider) Classify(ctx context.Context, image []byte) (*Classification, error) {
	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{
			{
				Image: &visionapi.Image{
					Content: base64.StdEncoding.EncodeToString(image),
				},
				Features: []*visionapi.Feature{
					{Type: "LABEL_DETECTION", MaxResults: p.maxResults},
					{Type: "TEXT_DETECTION"},
				},
			},
		},
	}

	resp, err := p.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError(err)
	}
	if len(resp.Responses) == 0 {
		return nil, apperrors.NewInternalError("provider returned an empty batch response", nil)
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return nil, mapAnnotationError(annotation.Error)
	}

	classification := &Classification{}
	for _, label := range annotation.LabelAnnotations {
		classification.Labels = append(classification.Labels, models.Label{
			Text:       label.Description,
			Confidence: label.Score,
		})
	}
	// The first text annotation is the full-page blob; the rest are the
	// individual spans we want.
	for i, text := range annotation.TextAnnotations {
		if i == 0 && len(annotation.TextAnnotations) > 1 {
			continue
		}
		classification.TextSpans = append(classification.TextSpans, models.TextSpan{Text: text.Description})
	}

	logger.WithFields(logrus.Fields{
		"labels":     len(classification.Labels),
		"text_spans": len(classification.TextSpans),
	}).Debug("Classification response received")

	return classification, nil
}

// mapProviderError folds transport-level failures into the error taxonomy.
func mapProviderError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError("classification call exceeded its deadline", err)
	}
	// Cancellation is the caller abandoning the request, not a provider
	// timeout; retrying it would be wrong.
	if errors.Is(err, context.Canceled) {
		return apperrors.NewInternalError("classification call was canceled", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401:
			return apperrors.NewUnauthenticatedError("provider rejected credentials", err)
		case apiErr.Code == 403:
			return apperrors.NewPermissionDeniedError("provider denied access", err)
		case apiErr.Code == 400:
			return apperrors.NewInvalidArgumentError("provider rejected the request", err)
		case apiErr.Code == 429:
			return apperrors.NewQuotaExceededError("provider quota exhausted", err)
		case apiErr.Code == 408 || apiErr.Code == 504:
			return apperrors.NewTimeoutError("provider timed out", err)
		case apiErr.Code >= 500:
			return apperrors.NewUnavailableError("provider is unavailable", err)
		}
		return apperrors.NewInternalError("provider call failed", err)
	}

	// Anything else (DNS, connection reset) is transient from our side.
	return apperrors.NewUnavailableError("could not reach the classification provider", err)
}

// mapAnnotationError folds per-image gRPC status codes reported inside an
// otherwise successful batch response.
func mapAnnotationError(status *visionapi.Status) error {
	err := errors.New(status.Message)
	switch status.Code {
	case 16: // UNAUTHENTICATED
		return apperrors.NewUnauthenticatedError("provider rejected credentials", err)
	case 7: // PERMISSION_DENIED
		return apperrors.NewPermissionDeniedError("provider denied access", err)
	case 3: // INVALID_ARGUMENT
		return apperrors.NewInvalidArgumentError("provider rejected the image", err)
	case 8: // RESOURCE_EXHAUSTED
		return apperrors.NewQuotaExceededError("provider quota exhausted", err)
	case 4: // DEADLINE_EXCEEDED
		return apperrors.NewTimeoutError("provider timed out processing the image", err)
	case 14: // UNAVAILABLE
		return apperrors.NewUnavailableError("provider is unavailable", err)
	default:
		return apperrors.NewInternalError("provider reported an annotation error", err)
	}
}
