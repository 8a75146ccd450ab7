package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// RetryLoop is the store-and-forward retry loop of the runtime.
type RetryLoop interface {
	StartStoreAndForwardRetryLoop(appCtx context.Context, appWg *sync.WaitGroup, sfCtx context.Context, sfWg *sync.WaitGroup)
}

// StoreForward runs the retry loop while store-and-forward is enabled.
// Restart stops the loop and starts it again with the current settings.
type StoreForward struct {
	loop    RetryLoop
	enabled func() bool
	restart chan struct{}
	log     *logger.Logger
}

func NewStoreForward(loop RetryLoop, enabled func() bool, log *logger.Logger) *StoreForward {
	return &StoreForward{
		loop:    loop,
		enabled: enabled,
		restart: make(chan struct{}, 1),
		log:     log,
	}
}

// Restart is safe to call at any time. Calls made while a restart is
// pending are merged.
func (w *StoreForward) Restart() {
	select {
	case w.restart <- struct{}{}:
	default:
	}
}

func (w *StoreForward) Run(ctx context.Context) {
	for {
		var wg sync.WaitGroup
		sfCtx, cancel := context.WithCancel(ctx)

		if w.enabled() {
			w.loop.StartStoreAndForwardRetryLoop(ctx, &wg, sfCtx, &wg)
		} else {
			w.log.Info().Msg("store and forward disabled")
		}

		select {
		case <-ctx.Done():
			cancel()
			wg.Wait()
			return
		case <-w.restart:
			cancel()
			wg.Wait()
			w.log.Info().Msg("restarting store and forward retry loop")
		}
	}
}
