package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrustScore(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		wantLabel    string
		wantCategory Category
	}{
		{name: "top of range", score: 100, wantLabel: "High", wantCategory: CategorySuccess},
		{name: "high lower bound inclusive", score: 80, wantLabel: "High", wantCategory: CategorySuccess},
		{name: "just below high", score: 79.9, wantLabel: "Medium", wantCategory: CategoryWarning},
		{name: "medium lower bound inclusive", score: 60, wantLabel: "Medium", wantCategory: CategoryWarning},
		{name: "just below medium", score: 59.9, wantLabel: "Low", wantCategory: CategoryDanger},
		{name: "zero", score: 0, wantLabel: "Low", wantCategory: CategoryDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := TrustScore(tt.score)
			assert.Equal(t, tt.wantLabel, tier.Label)
			assert.Equal(t, tt.wantCategory, tier.Category)
		})
	}
}

func TestTrustScorePartitionIsTotal(t *testing.T) {
	// Every score in [0,100) lands in exactly one band.
	for score := 0; score < 100; score++ {
		tier := TrustScore(float64(score))
		switch {
		case score >= 80:
			assert.Equal(t, "High", tier.Label, "score %d", score)
		case score >= 60:
			assert.Equal(t, "Medium", tier.Label, "score %d", score)
		default:
			assert.Equal(t, "Low", tier.Label, "score %d", score)
		}
	}
}

func TestDecisionCategory(t *testing.T) {
	assert.Equal(t, CategorySuccess, DecisionCategory("ACCEPT"))
	assert.Equal(t, CategoryWarning, DecisionCategory("REVIEW"))
	assert.Equal(t, CategoryDanger, DecisionCategory("REJECT"))
	assert.Equal(t, CategoryNeutral, DecisionCategory("MAYBE"))
	assert.Equal(t, CategoryNeutral, DecisionCategory(""))
	// Decisions are case-sensitive; the backend always sends upper case.
	assert.Equal(t, CategoryNeutral, DecisionCategory("accept"))
}

func TestAlertCategory(t *testing.T) {
	assert.Equal(t, CategorySuccess, AlertCategory("Safe"))
	assert.Equal(t, CategoryWarning, AlertCategory("Warning"))
	assert.Equal(t, CategoryDanger, AlertCategory("Critical"))
	assert.Equal(t, CategoryNeutral, AlertCategory("unknown"))
}

func TestSeverityCategory(t *testing.T) {
	assert.Equal(t, CategoryDanger, SeverityCategory("critical"))
	assert.Equal(t, CategoryDanger, SeverityCategory("HIGH"))
	assert.Equal(t, CategoryWarning, SeverityCategory("Medium"))
	assert.Equal(t, CategorySuccess, SeverityCategory("low"))
	assert.Equal(t, CategoryNeutral, SeverityCategory("whatever"))
}

func TestTruncateHash(t *testing.T) {
	assert.Equal(t, "0x1a2b3c4d...567890", TruncateHash("0x1a2b3c4d5e6f7890abcdef1234567890", 10))
	assert.Equal(t, "N/A", TruncateHash("", 10))
	// Short hashes are returned whole instead of sliced out of range.
	assert.Equal(t, "abc123", TruncateHash("abc123", 10))
	assert.Equal(t, "0123456789abcdef", TruncateHash("0123456789abcdef", 10))
	// Non-positive length falls back to the default prefix.
	assert.Equal(t, "0x1a2b3c4d...567890", TruncateHash("0x1a2b3c4d5e6f7890abcdef1234567890", 0))
}

func TestDate(t *testing.T) {
	d := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 7, 2026", Date(d))
}
