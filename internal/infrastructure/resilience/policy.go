package resilience

import "time"

// Policy tunes retry and circuit-breaker behavior for one guarded dependency.
type Policy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64

	BreakerEnabled       bool
	BreakerMinRequests   uint32
	BreakerFailureRatio  float64
	BreakerCooldown      time.Duration
	BreakerHalfOpenCalls uint32
}

// InferencePolicy is tuned for a local model server: short backoff, a
// breaker that trips once most requests fail.
func InferencePolicy() Policy {
	return Policy{
		MaxAttempts:       3,
		InitialBackoff:    250 * time.Millisecond,
		MaxBackoff:        2 * time.Second,
		BackoffMultiplier: 2.0,

		BreakerEnabled:       true,
		BreakerMinRequests:   5,
		BreakerFailureRatio:  0.6,
		BreakerCooldown:      20 * time.Second,
		BreakerHalfOpenCalls: 1,
	}
}

func (p Policy) normalize() Policy {
	out := p
	def := InferencePolicy()

	if out.MaxAttempts <= 0 {
		out.MaxAttempts = def.MaxAttempts
	}
	if out.InitialBackoff <= 0 {
		out.InitialBackoff = def.InitialBackoff
	}
	if out.MaxBackoff < out.InitialBackoff {
		out.MaxBackoff = out.InitialBackoff
	}
	if out.BackoffMultiplier < 1.0 {
		out.BackoffMultiplier = def.BackoffMultiplier
	}

	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerCooldown <= 0 {
		out.BreakerCooldown = def.BreakerCooldown
	}
	if out.BreakerHalfOpenCalls == 0 {
		out.BreakerHalfOpenCalls = def.BreakerHalfOpenCalls
	}

	return out
}
