// Package resilience wraps calls to a single flaky dependency with
// bounded retries and a circuit breaker.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Outcome is the classification of one failed call. Retry controls whether
// the executor tries again; CountsAsFailure controls whether the breaker
// records the call against its failure ratio.
type Outcome struct {
	Retry           bool
	CountsAsFailure bool
}

// Classifier maps an error from the guarded call to its Outcome. A nil
// classifier treats every error as final and breaker-visible.
type Classifier func(err error) Outcome

type Executor struct {
	policy  Policy
	logger  *slog.Logger
	breaker *gobreaker.CircuitBreaker[any]

	classify Classifier
}

// New builds an executor for one named dependency. The classifier is fixed
// at construction because the breaker's failure accounting depends on it.
func New(name string, policy Policy, classify Classifier, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	if classify == nil {
		classify = func(error) Outcome { return Outcome{CountsAsFailure: true} }
	}
	policy = policy.normalize()

	e := &Executor{policy: policy, logger: logger, classify: classify}
	if policy.BreakerEnabled {
		e.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:        name,
			MaxRequests: policy.BreakerHalfOpenCalls,
			Timeout:     policy.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < policy.BreakerMinRequests {
					return false
				}
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= policy.BreakerFailureRatio
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !e.classify(err).CountsAsFailure
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit_breaker_state_change",
					"dependency", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return e
}

// Do runs fn, retrying with exponential backoff while the classifier allows
// it. When the breaker is open the call fails without invoking fn.
func (e *Executor) Do(ctx context.Context, fn func(context.Context) error) error {
	if e.breaker == nil {
		return e.withRetry(ctx, fn)
	}
	_, err := e.breaker.Execute(func() (any, error) {
		return nil, e.withRetry(ctx, fn)
	})
	return err
}

func (e *Executor) withRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := e.policy.InitialBackoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !e.classify(err).Retry || attempt == e.policy.MaxAttempts {
			return err
		}

		e.logger.Warn("retry_attempt",
			"attempt", attempt,
			"max_attempts", e.policy.MaxAttempts,
			"backoff", backoff.String(),
			"error", err,
		)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		backoff = time.Duration(float64(backoff) * e.policy.BackoffMultiplier)
		if backoff > e.policy.MaxBackoff {
			backoff = e.policy.MaxBackoff
		}
	}
}

// Open reports whether the error came from a tripped breaker rather than
// the guarded call itself.
func Open(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
