// Package service orchestrates classification and scoring into the rating
// operations the transport layer exposes.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"go-performative-rater/internal/dictionary"
	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/logger"
	"go-performative-rater/internal/scoring"
	"go-performative-rater/internal/storage"
	"go-performative-rater/internal/vision"
	"go-performative-rater/pkg/models"
	"go-performative-rater/pkg/validation"
)

// Classifier is the slice of the resilient client the service needs.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (*vision.Classification, error)
	Health() models.BreakerStatus
}

// RatingService defines the rating operations.
type RatingService interface {
	Rate(ctx context.Context, image []byte) (*models.RatingResult, error)
	RateURL(ctx context.Context, imageURL string) (*models.RatingResult, error)
	HealthStatus() models.HealthStatus
	UpdateKeywords(entries map[string]int) error
}

type ratingService struct {
	classifier   Classifier
	engine       *scoring.Engine
	fetcher      storage.ImageFetcher
	urlValidator *validation.URLValidator
	keywords     *dictionary.Dictionary
}

// NewRatingService creates a rating service over the given collaborators.
func NewRatingService(
	classifier Classifier,
	keywords *dictionary.Dictionary,
	patterns *dictionary.Dictionary,
	fetcher storage.ImageFetcher,
) RatingService {
	return &ratingService{
		classifier:   classifier,
		engine:       scoring.NewEngine(keywords, patterns),
		fetcher:      fetcher,
		urlValidator: validation.NewURLValidator(),
		keywords:     keywords,
	}
}

// Rate classifies raw image bytes and scores the result.
func (s *ratingService) Rate(ctx context.Context, image []byte) (*models.RatingResult, error) {
	if len(image) == 0 {
		return nil, apperrors.NewInvalidInputError("image data is empty", nil)
	}

	started := time.Now()

	classification, err := s.classifier.Classify(ctx, image)
	if err != nil {
		logger.WithError(err).Error("Classification failed")
		return nil, err
	}

	result, err := s.engine.Score(classification.Labels, classification.TextSpans)
	if err != nil {
		return nil, err
	}
	result.Metadata.ProcessingTimeMs = time.Since(started).Milliseconds()

	logger.WithFields(logrus.Fields{
		"score":          result.Score,
		"items_detected": result.Metadata.ItemsDetected,
		"labels":         result.Metadata.LabelCount,
		"duration_ms":    result.Metadata.ProcessingTimeMs,
	}).Info("Image rated")

	return result, nil
}

// RateURL downloads the image first, then rates it like Rate.
func (s *ratingService) RateURL(ctx context.Context, imageURL string) (*models.RatingResult, error) {
	if err := s.urlValidator.Validate(imageURL); err != nil {
		return nil, err
	}

	image, err := s.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		logger.WithError(err).WithField("url", imageURL).Error("Image fetch failed")
		return nil, err
	}
	return s.Rate(ctx, image)
}

// HealthStatus reports service readiness including the breaker state. An
// open breaker means rating requests are being rejected, so the service is
// not ready; half-open still admits probes and counts as ready.
func (s *ratingService) HealthStatus() models.HealthStatus {
	breaker := s.classifier.Health()
	return models.HealthStatus{
		Ready:          breaker.State != "open",
		Breaker:        breaker,
		DictionarySize: s.keywords.Len(),
		Time:           time.Now().UTC().Format(time.RFC3339),
	}
}

// UpdateKeywords merges entries into the keyword dictionary. The batch is
// validated as a whole; an invalid entry rejects the entire update.
func (s *ratingService) UpdateKeywords(entries map[string]int) error {
	if err := s.keywords.Update(entries); err != nil {
		return err
	}
	logger.WithField("entries", len(entries)).Info("Keyword dictionary updated")
	return nil
}
