package dto

type QRVerifyRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id"`
}
