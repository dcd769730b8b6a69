package dto

// RegisterBatchRequest arrives as multipart form fields alongside the package
// image.
type RegisterBatchRequest struct {
	MedicineName string `form:"medicine_name"`
	Manufacturer string `form:"manufacturer"`
	BatchNumber  string `form:"batch_number"`
	ExpiryDate   string `form:"expiry_date"` // ISO date
	Ingredients  string `form:"ingredients"`
	Usage        string `form:"usage"`
	Storage      string `form:"storage"`
	Quantity     int    `form:"quantity_manufactured"`
}

type RegisterBatchResponse struct {
	Status         string `json:"status"`
	BlockchainHash string `json:"blockchain_hash"`
	HashDisplay    string `json:"hash_display"`
	QRCodeBase64   string `json:"qr_code_base64"`
}

// BatchView is one batch as the portal listings render it.
type BatchView struct {
	MedicineID     string `json:"medicine_id"`
	MedicineName   string `json:"medicine_name"`
	Manufacturer   string `json:"manufacturer"`
	BatchNumber    string `json:"batch_number"`
	ExpiryDate     string `json:"expiry_date"`
	Quantity       int    `json:"quantity_manufactured"`
	BlockchainHash string `json:"blockchain_hash"`
	HashDisplay    string `json:"hash_display"`
	QRCodeBase64   string `json:"qr_code_base64"`
}

type BatchListResponse struct {
	Batches []BatchView `json:"batches"`
	Total   int         `json:"total"`
}

type RegenerateQRResponse struct {
	QRCodeBase64 string `json:"qr_code_base64"`
}
