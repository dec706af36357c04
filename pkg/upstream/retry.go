package upstream

import (
	"context"
	"time"
)

// retrier runs a call up to maxRetries+1 times with exponential backoff.
type retrier struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

func newRetrier(maxRetries int, retryDelay time.Duration) *retrier {
	return &retrier{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

func (r *retrier) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxRetries || Classify(err) == SeverityFatal {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay(attempt)):
		}
	}

	return lastErr
}

func (r *retrier) delay(attempt int) time.Duration {
	d := float64(r.retryDelay)
	for i := 0; i < attempt; i++ {
		d *= r.backoffMultiplier
	}
	return time.Duration(d)
}
