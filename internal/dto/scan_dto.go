package dto

import "pharmachain-portal/pkg/format"

type StartScanResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

type AttachQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// ScanSessionResponse reflects a session back to the portal after each step.
type ScanSessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	HasQR     bool   `json:"has_qr"`
	HasImage  bool   `json:"has_image"`
	QRPreview string `json:"qr_preview,omitempty"`
	ImageName string `json:"image_name,omitempty"`
	ImageSize int64  `json:"image_size,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// TrustScoreView pairs the raw score with its display tier.
type TrustScoreView struct {
	Score    float64         `json:"score"`
	Label    string          `json:"label"`
	Category format.Category `json:"category"`
}

// VerificationResultResponse is the resolved judgment with every display
// classification pre-computed, so pages never re-derive styling rules.
type VerificationResultResponse struct {
	SessionID        string          `json:"session_id"`
	Decision         string          `json:"decision"`
	DecisionCategory format.Category `json:"decision_category"`
	TrustScore       TrustScoreView  `json:"trust_score"`
	Confidence       float64         `json:"confidence"`
	TrustLevel       string          `json:"trust_level"`
	MedicineID       string          `json:"medicine_id"`
	BatchNumber      string          `json:"batch_number"`
	MedicineDetails  map[string]any  `json:"medicine_details"`
	Blockchain       map[string]bool `json:"blockchain_verification"`
	ImageMatch       map[string]any  `json:"image_matching"`
	Recommendations  []string        `json:"recommendations"`
	NextActions      []string        `json:"next_actions"`
}

type NotifyRegulatorRequest struct {
	Reason string `json:"reason"`
}
