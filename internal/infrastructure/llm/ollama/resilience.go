package ollama

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gridrez/resume-parser/internal/core/domain"
	"github.com/gridrez/resume-parser/internal/infrastructure/resilience"
)

// transportOutcome classifies transport-level failures only. Schema and
// decode failures never reach the executor; they are not transient and
// retrying the model on them would burn inference capacity for nothing.
func transportOutcome(err error) resilience.Outcome {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Outcome{}
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		if retryableStatus(statusErr.StatusCode) {
			return resilience.Outcome{Retry: true, CountsAsFailure: true}
		}
		return resilience.Outcome{}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Outcome{Retry: true, CountsAsFailure: true}
	}

	return resilience.Outcome{CountsAsFailure: true}
}

// wrapTemporary marks transient transport failures with ErrTemporary so the
// intake surface can answer 503 instead of 500.
func wrapTemporary(operation string, err error) error {
	if err == nil || domain.IsKind(err, domain.ErrTemporary) {
		return err
	}
	if transportOutcome(err).Retry || resilience.Open(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
