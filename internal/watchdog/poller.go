// Package watchdog keeps the portal's view of the backend's fraud monitor
// fresh. While monitoring is active a single goroutine re-fetches status and
// alerts on a fixed interval; the loop's lifetime is scoped exactly to
// "monitoring active AND service running".
package watchdog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/pkg/backend"
)

// SnapshotTopic is the in-process topic snapshots are published on. The
// notification consumer relays them to connected monitor pages.
const SnapshotTopic = "watchdog.snapshot"

// Fetcher is the slice of the backend client the poller needs.
type Fetcher interface {
	Status(ctx context.Context) (*backend.WatchdogStatus, error)
	Alerts(ctx context.Context) ([]backend.Alert, error)
}

// Snapshot is one complete monitoring readout. Snapshots replace each other
// wholesale: the last response to arrive wins, whether it came from a tick
// or a manual refresh.
type Snapshot struct {
	Status    backend.WatchdogStatus `json:"status"`
	Alerts    []backend.Alert        `json:"alerts"`
	FetchedAt time.Time              `json:"fetched_at"`
}

// Poller drives the periodic refresh. Safe for concurrent use.
type Poller struct {
	fetcher   Fetcher
	interval  time.Duration
	publisher message.Publisher
	logger    logger.ILogger

	mu       sync.Mutex
	snapshot *Snapshot
	stop     chan struct{}
}

func NewPoller(fetcher Fetcher, interval time.Duration, publisher message.Publisher, log logger.ILogger) *Poller {
	return &Poller{
		fetcher:   fetcher,
		interval:  interval,
		publisher: publisher,
		logger:    log,
	}
}

// Start begins the polling loop. Starting an already running poller is a
// no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	stop := make(chan struct{})
	p.stop = stop
	go p.loop(stop)
	p.logger.Info("Watchdog", "Polling started", map[string]interface{}{"interval": p.interval.String()})
}

// Stop ends the polling loop and releases its ticker. No fetch fires after
// Stop returns. Stopping an idle poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
	p.logger.Info("Watchdog", "Polling stopped", nil)
}

// Running reports whether the polling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

// Refresh fetches status and alerts immediately, independent of the tick
// schedule. Concurrent refreshes do not coordinate; whichever response lands
// last becomes the snapshot.
func (p *Poller) Refresh(ctx context.Context) (*Snapshot, error) {
	status, err := p.fetcher.Status(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := p.fetcher.Alerts(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Status:    *status,
		Alerts:    alerts,
		FetchedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()

	p.publish(snap)
	return snap, nil
}

// Snapshot returns the most recent readout, or nil before the first fetch.
func (p *Poller) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *Poller) loop(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := p.Refresh(context.Background()); err != nil {
				// Keep the previous snapshot and keep ticking; the monitor
				// page shows stale data over no data.
				p.logger.Warn("Watchdog", "Poll refresh failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

func (p *Poller) publish(snap *Snapshot) {
	if p.publisher == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		p.logger.Error("Watchdog", "Failed to marshal snapshot", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(SnapshotTopic, msg); err != nil {
		p.logger.Warn("Watchdog", "Snapshot publish failed", map[string]interface{}{"error": err.Error()})
	}
}
