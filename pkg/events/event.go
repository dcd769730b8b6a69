package events

import "time"

// Event defines the contract for all portal audit events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "SCAN_RESOLVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers and by the
// subscriber when reconstructing events off the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes emitted by the portal.
const (
	TypeScanResolved      = "SCAN_RESOLVED"
	TypeRegulatorNotified = "REGULATOR_NOTIFIED"
	TypeBatchRegistered   = "BATCH_REGISTERED"
	TypeAlertsCleared     = "ALERTS_CLEARED"
)

// ScanResolved records a completed verification with its decision.
func ScanResolved(sessionID, decision string, trustScore float64) Event {
	return BaseEvent{
		Type: TypeScanResolved,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"decision":    decision,
			"trust_score": trustScore,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// RegulatorNotified records the fire-and-forget regulator notice for a
// rejected scan.
func RegulatorNotified(sessionID, batchNumber string) Event {
	return BaseEvent{
		Type: TypeRegulatorNotified,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"batch_number": batchNumber,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// BatchRegistered records a successful batch registration.
func BatchRegistered(medicineName, batchNumber, blockchainHash string) Event {
	return BaseEvent{
		Type: TypeBatchRegistered,
		Data: map[string]interface{}{
			"medicine_name":   medicineName,
			"batch_number":    batchNumber,
			"blockchain_hash": blockchainHash,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// AlertsCleared records an operator dismissing all watchdog alerts.
func AlertsCleared(clearedBy string) Event {
	return BaseEvent{
		Type: TypeAlertsCleared,
		Data: map[string]interface{}{
			"cleared_by": clearedBy,
		},
		OccurredAt: time.Now().UTC(),
	}
}
