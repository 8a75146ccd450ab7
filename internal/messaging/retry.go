package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/jpillora/backoff"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// RetryPolicy bounds how long a connect is retried.
type RetryPolicy struct {
	Interval time.Duration
	Duration time.Duration
}

// ConnectWithRetry calls connect until it succeeds, the policy duration has
// elapsed or ctx is done. Waits grow from Interval up to four times
// Interval.
func ConnectWithRetry(ctx context.Context, name string, policy RetryPolicy, log *logger.Logger, connect func() error) error {
	b := &backoff.Backoff{
		Min:    policy.Interval,
		Max:    4 * policy.Interval,
		Factor: 2,
		Jitter: true,
	}
	deadline := time.Now().Add(policy.Duration)

	for {
		err := connect()
		if err == nil {
			return nil
		}

		wait := b.Duration()
		if time.Now().Add(wait).After(deadline) {
			return fmt.Errorf("%w to %s after %d attempts: %w", ErrConnect, name, int(b.Attempt()), err)
		}

		log.Warn().Err(err).Str("target", name).Dur("retryIn", wait).Msg("connect failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w to %s: %w", ErrConnect, name, ctx.Err())
		case <-time.After(wait):
		}
	}
}
