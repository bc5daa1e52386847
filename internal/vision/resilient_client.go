package vision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"go-performative-rater/internal/config"
	apperrors "go-performative-rater/internal/errors"
	"go-performative-rater/internal/logger"
	"go-performative-rater/pkg/models"
)

// ResilientClient wraps a Provider with per-attempt timeouts, exponential
// backoff retries, and a circuit breaker. The breaker sees one outcome per
// Classify call: a call that exhausts all retries counts as a single
// failure, not one per attempt.
type ResilientClient struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker

	callTimeout    time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewResilientClient creates a client with the breaker policy from cfg.
func NewResilientClient(provider Provider, cfg *config.Config) *ResilientClient {
	settings := gobreaker.Settings{
		Name:        "classification-provider",
		MaxRequests: uint32(cfg.HalfOpenSuccessThreshold),
		Timeout:     cfg.ResetTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &ResilientClient{
		provider:       provider,
		cb:             gobreaker.NewCircuitBreaker(settings),
		callTimeout:    cfg.CallTimeout,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// Classify runs the image through the provider under the full resilience
// policy. When the breaker is open, it fails immediately with a
// circuit_open error and the provider is never called.
func (c *ResilientClient) Classify(ctx context.Context, image []byte) (*Classification, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.classifyWithRetry(ctx, image)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.NewCircuitOpenError("classification provider is temporarily suspended", err)
		}
		return nil, err
	}
	return result.(*Classification), nil
}

// Health reports the breaker's current state and counters.
func (c *ResilientClient) Health() models.BreakerStatus {
	counts := c.cb.Counts()
	return models.BreakerStatus{
		State:               c.cb.State().String(),
		Requests:            counts.Requests,
		TotalSuccesses:      counts.TotalSuccesses,
		TotalFailures:       counts.TotalFailures,
		ConsecutiveFailures: counts.ConsecutiveFailures,
	}
}

func (c *ResilientClient) classifyWithRetry(ctx context.Context, image []byte) (*Classification, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		classification, err := c.classifyAttempt(ctx, image)
		if err == nil {
			return classification, nil
		}
		lastErr = err

		if !apperrors.IsRetryable(err) {
			logger.WithError(err).WithField("attempt", attempt).Debug("Classification failed with a terminal error")
			return nil, err
		}
		if attempt == c.maxRetries {
			break
		}

		delay := c.retryBaseDelay << (attempt - 1)
		logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
		}).Debug("Retrying classification after transient failure")

		select {
		case <-ctx.Done():
			return nil, apperrors.NewTimeoutError("classification abandoned while waiting to retry", ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, apperrors.NewUnavailableError(
		fmt.Sprintf("classification failed after %d attempts", c.maxRetries), lastErr)
}

type attemptOutcome struct {
	classification *Classification
	err            error
}

// classifyAttempt runs one provider call raced against the per-attempt
// deadline. The deadline is enforced here, not delegated: a provider that
// ignores ctx still cannot hold the attempt past CallTimeout. The
// abandoned goroutine drains into a buffered channel and exits on its own.
func (c *ResilientClient) classifyAttempt(ctx context.Context, image []byte) (*Classification, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	done := make(chan attemptOutcome, 1)
	go func() {
		classification, err := c.provider.Classify(attemptCtx, image)
		done <- attemptOutcome{classification: classification, err: err}
	}()

	select {
	case out := <-done:
		return out.classification, out.err
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.Canceled) {
			return nil, apperrors.NewInternalError("classification call was canceled", attemptCtx.Err())
		}
		return nil, apperrors.NewTimeoutError("classification attempt exceeded its deadline", attemptCtx.Err())
	}
}
