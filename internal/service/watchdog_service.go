package service

import (
	"context"
	"time"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/watchdog"
	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/events"
	"pharmachain-portal/pkg/format"
	portalnats "pharmachain-portal/pkg/nats"
)

type IWatchdogService interface {
	StartMonitoring(ctx context.Context) (*dto.WatchdogStatusResponse, error)
	StopMonitoring(ctx context.Context) (*dto.WatchdogStatusResponse, error)
	Status(ctx context.Context) (*dto.WatchdogStatusResponse, error)
	Alerts(ctx context.Context) (*dto.AlertListResponse, error)
	ClearAlerts(ctx context.Context, clearedBy string) error
}

type watchdogService struct {
	client    *backend.Client
	poller    *watchdog.Poller
	publisher *portalnats.Publisher
	logger    logger.ILogger
}

func NewWatchdogService(client *backend.Client, poller *watchdog.Poller, publisher *portalnats.Publisher, log logger.ILogger) IWatchdogService {
	return &watchdogService{
		client:    client,
		poller:    poller,
		publisher: publisher,
		logger:    log,
	}
}

// StartMonitoring activates the backend monitor and begins local polling.
// The first snapshot is fetched immediately so the page never waits a full
// interval for data.
func (s *watchdogService) StartMonitoring(ctx context.Context) (*dto.WatchdogStatusResponse, error) {
	if err := s.client.Watchdog.StartMonitoring(ctx); err != nil {
		return nil, err
	}
	s.poller.Start()
	s.logger.Info("Watchdog", "Monitoring started", nil)

	snap, err := s.poller.Refresh(ctx)
	if err != nil {
		// The monitor is running even if the first readout failed; report
		// what we know.
		s.logger.Warn("Watchdog", "Initial refresh failed", map[string]interface{}{"error": err.Error()})
		return &dto.WatchdogStatusResponse{Monitoring: true, Polling: s.poller.Running()}, nil
	}
	return statusResponse(&snap.Status, s.poller.Running()), nil
}

// StopMonitoring halts local polling. The backend monitor keeps its own
// state; only the portal's refresh loop stops.
func (s *watchdogService) StopMonitoring(ctx context.Context) (*dto.WatchdogStatusResponse, error) {
	s.poller.Stop()
	s.logger.Info("Watchdog", "Monitoring stopped", nil)

	status, err := s.client.Watchdog.Status(ctx)
	if err != nil {
		return &dto.WatchdogStatusResponse{Polling: false}, nil
	}
	return statusResponse(status, false), nil
}

func (s *watchdogService) Status(ctx context.Context) (*dto.WatchdogStatusResponse, error) {
	status, err := s.client.Watchdog.Status(ctx)
	if err != nil {
		return nil, err
	}
	return statusResponse(status, s.poller.Running()), nil
}

// Alerts fetches a fresh readout and returns every alert with its display
// severity derived server-side.
func (s *watchdogService) Alerts(ctx context.Context) (*dto.AlertListResponse, error) {
	snap, err := s.poller.Refresh(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]dto.AlertView, 0, len(snap.Alerts))
	for _, a := range snap.Alerts {
		views = append(views, alertView(a))
	}
	return &dto.AlertListResponse{
		Alerts:    views,
		Total:     len(views),
		FetchedAt: snap.FetchedAt.Format(time.RFC3339),
	}, nil
}

func (s *watchdogService) ClearAlerts(ctx context.Context, clearedBy string) error {
	if err := s.client.Watchdog.ClearAlerts(ctx); err != nil {
		return err
	}
	s.logger.Info("Watchdog", "Alerts cleared", map[string]interface{}{"cleared_by": clearedBy})

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.AlertsCleared(clearedBy)); err != nil {
			s.logger.Warn("Watchdog", "Audit publish failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// Refresh so the next snapshot broadcast reflects the cleared list.
	if _, err := s.poller.Refresh(ctx); err != nil {
		s.logger.Warn("Watchdog", "Refresh after clear failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func statusResponse(status *backend.WatchdogStatus, polling bool) *dto.WatchdogStatusResponse {
	return &dto.WatchdogStatusResponse{
		Monitoring:  status.Monitoring,
		Polling:     polling,
		TotalAlerts: status.TotalAlerts,
		LastScan:    status.LastScan,
	}
}

func alertView(a backend.Alert) dto.AlertView {
	return dto.AlertView{
		ID:        a.ID,
		AlertType: a.AlertType,
		Severity:  a.Severity,
		Category:  format.SeverityCategory(a.Severity),
		Message:   a.Message,
		Timestamp: a.Timestamp,
	}
}
