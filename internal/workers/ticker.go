package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// Ticker runs a job at an interval. The interval is read again after every
// run, so a changed setting applies from the next tick.
type Ticker struct {
	name     string
	interval func() time.Duration
	job      func(ctx context.Context) error
	log      *logger.Logger
}

func NewTicker(name string, interval func() time.Duration, job func(ctx context.Context) error, log *logger.Logger) *Ticker {
	return &Ticker{name: name, interval: interval, job: job, log: log}
}

func (t *Ticker) Run(ctx context.Context) {
	t.log.Info().Str("worker", t.name).Dur("interval", t.interval()).Msg("worker started")

	timer := time.NewTimer(t.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info().Str("worker", t.name).Msg("worker stopped")
			return
		case <-timer.C:
			if err := t.job(ctx); err != nil {
				t.log.Err(err).Str("worker", t.name).Send()
			}
			timer.Reset(t.interval())
		}
	}
}
