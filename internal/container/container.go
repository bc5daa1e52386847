// Package container wires the application's dependency graph.
package container

import (
	"context"
	"fmt"
	"net/http"

	"go-performative-rater/internal/config"
	"go-performative-rater/internal/dictionary"
	"go-performative-rater/internal/service"
	"go-performative-rater/internal/storage"
	"go-performative-rater/internal/transport"
	"go-performative-rater/internal/vision"
)

// Container holds all application dependencies
type Container struct {
	config        *config.Config
	imageFetcher  storage.ImageFetcher
	classifier    *vision.ResilientClient
	ratingService service.RatingService
	handler       http.Handler
}

// NewContainer builds the dependency graph from the given configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	provider, err := vision.NewGoogleProvider(ctx, cfg.VisionAPIKey, cfg.LabelMaxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to create classification provider: %w", err)
	}
	classifier := vision.NewResilientClient(provider, cfg)

	imageFetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout, cfg.MaxRequestBodySize)

	ratingService := service.NewRatingService(
		classifier,
		dictionary.DefaultKeywords(),
		dictionary.DefaultTextPatterns(),
		imageFetcher,
	)
	handler := transport.NewHandler(ratingService, cfg)

	return &Container{
		config:        cfg,
		imageFetcher:  imageFetcher,
		classifier:    classifier,
		ratingService: ratingService,
		handler:       handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
