package status

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"stationctl/internal/station"
)

type scriptedFetcher struct {
	calls atomic.Int64
	fail  bool
}

func (f *scriptedFetcher) StatusSnapshot(ctx context.Context) (Snapshot, error) {
	f.calls.Add(1)
	if f.fail {
		return nil, errors.New("manager unreachable")
	}
	return Snapshot{
		"cam01": {Status: map[string]station.RawProcess{"record": {Status: "started"}}},
	}, nil
}

func TestPollerPublishesReportsUntilCancelled(t *testing.T) {
	fetcher := &scriptedFetcher{}
	reports := make(chan Report, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := NewPoller(fetcher, 5*time.Millisecond, nil, func(r Report) {
		select {
		case reports <- r:
		default:
		}
	})

	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	select {
	case report := <-reports:
		if len(report.Stations) != 1 || report.Stations[0].Name != "cam01" {
			t.Fatalf("unexpected report: %+v", report)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first report")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestPollerReschedulesAfterFetchFailure(t *testing.T) {
	fetcher := &scriptedFetcher{fail: true}
	var published atomic.Int64

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := NewPoller(fetcher, time.Millisecond, nil, func(Report) { published.Add(1) })
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for fetcher.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected repeated fetch attempts, got %d", fetcher.calls.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done

	if published.Load() != 0 {
		t.Fatalf("failed fetches must publish nothing, got %d reports", published.Load())
	}
}
