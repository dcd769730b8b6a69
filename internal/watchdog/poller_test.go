package watchdog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/pkg/backend"
)

type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	status backend.WatchdogStatus
	alerts []backend.Alert
}

func (f *fakeFetcher) Status(ctx context.Context) (*backend.WatchdogStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	s := f.status
	return &s, nil
}

func (f *fakeFetcher) Alerts(ctx context.Context) ([]backend.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.alerts, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) Recent(string, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func TestPollerFetchesOncePerTick(t *testing.T) {
	f := &fakeFetcher{status: backend.WatchdogStatus{Monitoring: true, TotalAlerts: 1}}
	p := NewPoller(f, 20*time.Millisecond, nil, nopLogger{})

	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool { return f.callCount() >= 2 }, time.Second, 5*time.Millisecond)

	snap := p.Snapshot()
	require.NotNil(t, snap)
	assert.True(t, snap.Status.Monitoring)
}

func TestPollerStopCancelsPendingTicks(t *testing.T) {
	f := &fakeFetcher{}
	p := NewPoller(f, 15*time.Millisecond, nil, nopLogger{})

	p.Start()
	require.Eventually(t, func() bool { return f.callCount() >= 1 }, time.Second, 5*time.Millisecond)
	p.Stop()
	assert.False(t, p.Running())

	settled := f.callCount()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, settled, f.callCount(), "no fetch may fire after Stop")
}

func TestPollerStartStopIdempotent(t *testing.T) {
	f := &fakeFetcher{}
	p := NewPoller(f, time.Hour, nil, nopLogger{})

	p.Start()
	p.Start()
	assert.True(t, p.Running())

	p.Stop()
	p.Stop()
	assert.False(t, p.Running())
}

func TestManualRefreshLastWriteWins(t *testing.T) {
	f := &fakeFetcher{status: backend.WatchdogStatus{TotalAlerts: 1}}
	p := NewPoller(f, time.Hour, nil, nopLogger{})

	_, err := p.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p.Snapshot())
	assert.Equal(t, 1, p.Snapshot().Status.TotalAlerts)

	// A later response replaces the snapshot wholesale.
	f.mu.Lock()
	f.status.TotalAlerts = 5
	f.alerts = []backend.Alert{{AlertType: "duplicate_qrs", Severity: "high"}}
	f.mu.Unlock()

	_, err = p.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, p.Snapshot().Status.TotalAlerts)
	assert.Len(t, p.Snapshot().Alerts, 1)
}

func TestRefreshWithoutStartWorks(t *testing.T) {
	// Manual refresh is allowed while monitoring is off; it just doesn't
	// start the loop.
	f := &fakeFetcher{}
	p := NewPoller(f, time.Hour, nil, nopLogger{})

	_, err := p.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, p.Running())
	assert.Equal(t, 1, f.callCount())
}
