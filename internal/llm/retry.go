package llm

import (
	"context"
	"log"
	"time"

	"vibecheck/internal/port"
)

// DefaultRetryDelays are the pauses before each attempt: immediately, then
// after 2, 5 and 10 seconds.
var DefaultRetryDelays = []time.Duration{0, 2 * time.Second, 5 * time.Second, 10 * time.Second}

// RetryingGenerator retries a generator while it reports overload. Any other
// error is returned at once.
type RetryingGenerator struct {
	next   port.TextGenerator
	delays []time.Duration
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryingGenerator wraps next. An empty delays uses DefaultRetryDelays.
func NewRetryingGenerator(next port.TextGenerator, delays []time.Duration) *RetryingGenerator {
	if len(delays) == 0 {
		delays = DefaultRetryDelays
	}
	return &RetryingGenerator{next: next, delays: delays, sleep: sleepCtx}
}

func (r *RetryingGenerator) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	var lastErr error
	for attempt, delay := range r.delays {
		if delay > 0 {
			log.Printf("llm.RetryingGenerator: WARNING: overloaded, retrying in %s (attempt %d/%d)",
				delay, attempt+1, len(r.delays))
			if err := r.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
		out, err := r.next.Generate(ctx, input)
		if err == nil {
			return out, nil
		}
		if !IsOverloaded(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
