package format

import (
	"strings"
	"time"
)

// Category is the display classification the portal frontends key their
// styling on. It mirrors the badge variants the UI understands.
type Category string

const (
	CategorySuccess Category = "success"
	CategoryWarning Category = "warning"
	CategoryDanger  Category = "danger"
	CategoryNeutral Category = "neutral"
)

// TrustTier classifies a backend trust score into the band the portal shows.
type TrustTier struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// TrustScore maps a 0-100 trust score to its display tier. Bands are
// inclusive on their lower bound: [80,100] High, [60,80) Medium, below Low.
func TrustScore(score float64) TrustTier {
	if score >= 80 {
		return TrustTier{Label: "High", Category: CategorySuccess}
	}
	if score >= 60 {
		return TrustTier{Label: "Medium", Category: CategoryWarning}
	}
	return TrustTier{Label: "Low", Category: CategoryDanger}
}

// DecisionCategory maps an AI decision to its display category.
// Anything outside the three known decisions renders neutrally.
func DecisionCategory(decision string) Category {
	switch decision {
	case "ACCEPT":
		return CategorySuccess
	case "REVIEW":
		return CategoryWarning
	case "REJECT":
		return CategoryDanger
	default:
		return CategoryNeutral
	}
}

// AlertCategory maps a watchdog alert level (Safe/Warning/Critical) to its
// display category.
func AlertCategory(level string) Category {
	switch level {
	case "Safe":
		return CategorySuccess
	case "Warning":
		return CategoryWarning
	case "Critical":
		return CategoryDanger
	default:
		return CategoryNeutral
	}
}

// SeverityCategory maps an alert severity (critical/high/medium/low) to its
// display category. Case-insensitive on ASCII because the backend has emitted
// both spellings.
func SeverityCategory(severity string) Category {
	switch strings.ToLower(severity) {
	case "critical", "high":
		return CategoryDanger
	case "medium":
		return CategoryWarning
	case "low":
		return CategorySuccess
	default:
		return CategoryNeutral
	}
}

// TruncateHash shortens a blockchain hash for display: the first length
// characters, an ellipsis, then the last 6. Empty input yields "N/A". Inputs
// too short to abbreviate are returned whole.
func TruncateHash(hash string, length int) string {
	if hash == "" {
		return "N/A"
	}
	if length <= 0 {
		length = 10
	}
	const suffix = 6
	if len(hash) <= length+suffix {
		return hash
	}
	return hash[:length] + "..." + hash[len(hash)-suffix:]
}

// Date renders a timestamp the way portal listings show it (e.g. "Jan 2, 2026").
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
