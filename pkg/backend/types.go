package backend

import "encoding/json"

// Decision is the backend's categorical recommendation for a scan.
type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionReview  Decision = "REVIEW"
	DecisionReject  Decision = "REJECT"
	DecisionUnknown Decision = "UNKNOWN"
)

// ParseDecision maps a raw decision string onto the closed enum. Anything
// outside the three known values degrades to DecisionUnknown so a malformed
// response can never drive an accept/reject side effect.
func ParseDecision(raw string) Decision {
	switch Decision(raw) {
	case DecisionAccept, DecisionReview, DecisionReject:
		return Decision(raw)
	default:
		return DecisionUnknown
	}
}

// Batch is a manufacturer's registered production run as reported by the
// backend.
type Batch struct {
	MedicineID     string `json:"medicine_id"`
	MedicineName   string `json:"medicine_name"`
	Manufacturer   string `json:"manufacturer"`
	BatchNumber    string `json:"batch_number"`
	ExpiryDate     string `json:"expiry_date"`
	Quantity       int    `json:"quantity_manufactured"`
	BlockchainHash string `json:"blockchain_hash"`
	QRCodeBase64   string `json:"qr_code_base64"`
	CreatedAt      string `json:"created_at"`
}

// BatchRegistration is the backend's receipt for a newly registered batch.
type BatchRegistration struct {
	Status         string `json:"status"`
	BlockchainHash string `json:"blockchain_hash"`
	QRCodeBase64   string `json:"qr_code_base64"`
}

// QRInfo identifies the medicine a scanned QR payload resolved to.
type QRInfo struct {
	MedicineID  string `json:"medicine_id"`
	BatchNumber string `json:"batch_number"`
}

// BlockchainChecks is the set of boolean match flags from the backend's
// ledger verification.
type BlockchainChecks struct {
	BlockchainVerified bool `json:"blockchain_verified"`
	DatabaseMatch      bool `json:"database_match"`
	MedicineFound      bool `json:"medicine_found"`
	HashMatch          bool `json:"hash_match"`
}

// ImageMatch is the backend's AI image comparison result.
type ImageMatch struct {
	MatchScore      float64 `json:"match_score"`
	Similarity      float64 `json:"similarity"`
	MatchConfidence string  `json:"match_confidence"`
	AIAnalysis      string  `json:"ai_analysis"`
}

// VerificationOutcome is the normalized judgment for one scan submission.
// It is immutable once received.
type VerificationOutcome struct {
	Decision        Decision         `json:"ai_decision"`
	TrustScore      float64          `json:"trust_score"`
	Confidence      float64          `json:"confidence"`
	TrustLevel      string           `json:"trust_level"`
	QRData          QRInfo           `json:"qr_data"`
	MedicineDetails map[string]any   `json:"medicine_details"`
	Blockchain      BlockchainChecks `json:"blockchain_verification"`
	ImageMatching   ImageMatch       `json:"image_matching"`
	Recommendations []string         `json:"recommendations"`
}

// wire shape of POST /pharmacy/verify-medicine.
type verifyMedicineResponse struct {
	VerificationResult *struct {
		AIDecision string  `json:"ai_decision"`
		TrustScore float64 `json:"trust_score"`
		Confidence float64 `json:"confidence"`
		TrustLevel string  `json:"trust_level"`
	} `json:"verification_result"`
	QRData                 QRInfo           `json:"qr_data"`
	MedicineDetails        map[string]any   `json:"medicine_details"`
	BlockchainVerification BlockchainChecks `json:"blockchain_verification"`
	ImageMatching          ImageMatch       `json:"image_matching"`
	Recommendations        []string         `json:"recommendations"`
}

func (r *verifyMedicineResponse) normalize() VerificationOutcome {
	out := VerificationOutcome{
		Decision:        DecisionUnknown,
		QRData:          r.QRData,
		MedicineDetails: r.MedicineDetails,
		Blockchain:      r.BlockchainVerification,
		ImageMatching:   r.ImageMatching,
		Recommendations: r.Recommendations,
	}
	// A missing verification_result block degrades to an unknown decision;
	// the rest of the payload still renders.
	if r.VerificationResult != nil {
		out.Decision = ParseDecision(r.VerificationResult.AIDecision)
		out.TrustScore = r.VerificationResult.TrustScore
		out.Confidence = r.VerificationResult.Confidence
		out.TrustLevel = r.VerificationResult.TrustLevel
	}
	return out
}

// WatchdogStatus is the monitoring process state.
type WatchdogStatus struct {
	Monitoring  bool   `json:"monitoring"`
	TotalAlerts int    `json:"total_alerts"`
	LastScan    string `json:"last_scan"`
}

// Alert is a single fraud-signal notification from the watchdog.
type Alert struct {
	ID        string `json:"id"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// decodeBatchList tolerates both envelope shapes the backend has used:
// {"batches":[...]} and a bare array.
func decodeBatchList(raw json.RawMessage) []Batch {
	var envelope struct {
		Batches []Batch `json:"batches"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Batches != nil {
		return envelope.Batches
	}
	var list []Batch
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return list
	}
	return []Batch{}
}
