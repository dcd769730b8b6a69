package backend

import "context"

// WatchdogAPI covers the /watchdog endpoint group.
type WatchdogAPI struct {
	c *Client
}

// StartMonitoring activates the backend's fraud monitoring process.
func (a *WatchdogAPI) StartMonitoring(ctx context.Context) error {
	return a.c.postJSON(ctx, "/watchdog/start-monitoring", map[string]any{}, nil)
}

// Status reports whether monitoring is active and how many alerts exist.
func (a *WatchdogAPI) Status(ctx context.Context) (*WatchdogStatus, error) {
	var out WatchdogStatus
	if err := a.c.getJSON(ctx, "/watchdog/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts lists the currently open fraud alerts.
func (a *WatchdogAPI) Alerts(ctx context.Context) ([]Alert, error) {
	var out struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := a.c.getJSON(ctx, "/watchdog/alerts", &out); err != nil {
		return nil, err
	}
	if out.Alerts == nil {
		return []Alert{}, nil
	}
	return out.Alerts, nil
}

// ClearAlerts dismisses all open alerts.
func (a *WatchdogAPI) ClearAlerts(ctx context.Context) error {
	return a.c.postJSON(ctx, "/watchdog/clear-alerts", map[string]any{}, nil)
}
