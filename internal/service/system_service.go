package service

import (
	"context"
	"sync"
	"time"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/pkg/backend"
)

// ISystemService reports the health of the backend's route groups and
// exposes the portal's recent log entries for the diagnostics page.
type ISystemService interface {
	Health(ctx context.Context) *SystemHealth
	RecentLogs(level string, limit int) ([]logger.LogEntry, error)
}

// ComponentHealth is one route group's reachability check.
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

type SystemHealth struct {
	Healthy    bool              `json:"healthy"`
	Components []ComponentHealth `json:"components"`
	CheckedAt  string            `json:"checked_at"`
}

type systemService struct {
	client *backend.Client
	logger logger.ILogger
}

func NewSystemService(client *backend.Client, log logger.ILogger) ISystemService {
	return &systemService{client: client, logger: log}
}

// Health probes each backend route group concurrently. A failing group never
// fails the call; the readout reports per-component status.
func (s *systemService) Health(ctx context.Context) *SystemHealth {
	checks := []struct {
		name  string
		probe func(context.Context) error
	}{
		{"manufacturer", s.client.Manufacturer.Health},
		{"pharmacy", s.client.Pharmacy.Health},
		{"ai_agent", func(ctx context.Context) error {
			_, err := s.client.AI.AgentStatus(ctx)
			return err
		}},
		{"watchdog", func(ctx context.Context) error {
			_, err := s.client.Watchdog.Status(ctx)
			return err
		}},
	}

	components := make([]ComponentHealth, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, name string, probe func(context.Context) error) {
			defer wg.Done()
			component := ComponentHealth{Name: name, Healthy: true}
			if err := probe(ctx); err != nil {
				component.Healthy = false
				component.Error = err.Error()
			}
			components[i] = component
		}(i, check.name, check.probe)
	}
	wg.Wait()

	healthy := true
	for _, c := range components {
		if !c.Healthy {
			healthy = false
			break
		}
	}
	return &SystemHealth{
		Healthy:    healthy,
		Components: components,
		CheckedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *systemService) RecentLogs(level string, limit int) ([]logger.LogEntry, error) {
	return s.logger.Recent(level, limit)
}
