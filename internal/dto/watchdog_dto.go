package dto

import "pharmachain-portal/pkg/format"

type WatchdogStatusResponse struct {
	Monitoring  bool   `json:"monitoring"`
	Polling     bool   `json:"polling"`
	TotalAlerts int    `json:"total_alerts"`
	LastScan    string `json:"last_scan,omitempty"`
}

// AlertView is a watchdog alert with its display severity pre-derived.
type AlertView struct {
	ID        string          `json:"id,omitempty"`
	AlertType string          `json:"alert_type"`
	Severity  string          `json:"severity"`
	Category  format.Category `json:"category"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

type AlertListResponse struct {
	Alerts    []AlertView `json:"alerts"`
	Total     int         `json:"total"`
	FetchedAt string      `json:"fetched_at,omitempty"`
}
