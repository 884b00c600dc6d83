package status

import (
	"context"
	"log/slog"
	"time"

	"stationctl/internal/logging"
)

// Fetcher retrieves a raw status snapshot.
type Fetcher interface {
	StatusSnapshot(ctx context.Context) (Snapshot, error)
}

// Poller repeatedly fetches and annotates status snapshots.
//
// Scheduling is chained rather than fixed-rate: each cycle arms the next one
// only after the fetch and publish complete, so a slow manager never stacks
// requests. A failed fetch publishes nothing and the loop still reschedules.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
	publish  func(Report)
}

// NewPoller constructs a poller that invokes publish with each annotated
// report.
func NewPoller(fetcher Fetcher, interval time.Duration, logger *slog.Logger, publish func(Report)) *Poller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		logger:   logging.WithComponent(logger, "status"),
		publish:  publish,
	}
}

// Run polls until ctx is cancelled. The context is the caller's cancellation
// handle; teardown must cancel it to stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	for {
		p.cycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	snapshot, err := p.fetcher.StatusSnapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("status fetch failed", slog.String("error", err.Error()))
		}
		return
	}

	report := Annotate(snapshot)
	if p.publish != nil {
		p.publish(report)
	}
}
