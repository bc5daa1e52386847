// Package storage fetches remote image bytes for URL-based rating requests.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/logger"
)

const fetchAttempts = 3

// ImageFetcher downloads the raw bytes of a remote image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// HTTPImageFetcher implements ImageFetcher over a pooled HTTP client.
type HTTPImageFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPImageFetcher creates an HTTP image fetcher. Downloads larger than
// maxBytes are rejected rather than truncated.
func NewHTTPImageFetcher(timeout time.Duration, maxBytes int64) ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		maxBytes: maxBytes,
	}
}

func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "performative-rater/1.0")

	// Transient failures (network errors, 5xx) are retried; client errors
	// fail immediately.
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = apperrors.NewNetworkError("failed to fetch image", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return h.readBody(resp)
		}

		resp.Body.Close()
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("image URL returned status %d", resp.StatusCode), nil)
		}
		lastErr = apperrors.NewNetworkError(
			fmt.Sprintf("image URL returned status %d", resp.StatusCode), nil)

		logger.WithField("attempt", attempt).Debug("Retrying image fetch")
	}

	return nil, lastErr
}

func (h *HTTPImageFetcher) readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.ContentLength > h.maxBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", h.maxBytes), nil)
	}

	// Read one byte past the limit so oversized bodies without a
	// Content-Length header are still caught.
	data, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read image body", err)
	}
	if int64(len(data)) > h.maxBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image exceeds the %d byte limit", h.maxBytes), nil)
	}
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("image URL returned an empty body", nil)
	}
	return data, nil
}
