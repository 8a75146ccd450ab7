package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func TestConnectWithRetry(t *testing.T) {
	policy := RetryPolicy{Interval: time.Millisecond, Duration: time.Second}

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := ConnectWithRetry(context.Background(), "broker", policy, logger.Nop(), func() error {
			calls++
			if calls < 3 {
				return errors.New("refused")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after duration", func(t *testing.T) {
		short := RetryPolicy{Interval: 5 * time.Millisecond, Duration: 20 * time.Millisecond}
		err := ConnectWithRetry(context.Background(), "broker", short, logger.Nop(), func() error {
			return errors.New("refused")
		})
		assert.ErrorIs(t, err, ErrConnect)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := ConnectWithRetry(ctx, "broker", RetryPolicy{Interval: time.Second, Duration: time.Minute}, logger.Nop(), func() error {
			return errors.New("refused")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
