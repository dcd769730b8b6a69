package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ManufacturerAPI covers the /manufacturer endpoint group.
type ManufacturerAPI struct {
	c *Client
}

// Create registers a manufacturer identity with the backend.
func (a *ManufacturerAPI) Create(ctx context.Context, data map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := a.c.postJSON(ctx, "/manufacturer/", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByName looks a manufacturer up by its registered name.
func (a *ManufacturerAPI) GetByName(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/manufacturer/"+url.PathEscape(name), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID looks a manufacturer up by id.
func (a *ManufacturerAPI) GetByID(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/manufacturer/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterBatchRequest carries the multipart fields for a batch registration.
type RegisterBatchRequest struct {
	MedicineName string
	Manufacturer string
	BatchNumber  string
	ExpiryDate   string // ISO date
	Ingredients  string
	Usage        string
	Storage      string
	Quantity     int
	Image        *Upload
}

// RegisterBatch submits a batch with its package image and returns the
// blockchain receipt.
func (a *ManufacturerAPI) RegisterBatch(ctx context.Context, req RegisterBatchRequest) (*BatchRegistration, error) {
	fields := map[string]string{
		"medicine_name":         req.MedicineName,
		"manufacturer":          req.Manufacturer,
		"batch_number":          req.BatchNumber,
		"expiry_date":           req.ExpiryDate,
		"ingredients":           req.Ingredients,
		"usage":                 req.Usage,
		"storage":               req.Storage,
		"quantity_manufactured": strconv.Itoa(req.Quantity),
	}
	if req.Image != nil && req.Image.FieldName == "" {
		req.Image.FieldName = "image"
	}

	var out struct {
		Status            string `json:"status"`
		Detail            string `json:"detail"`
		BatchRegistration struct {
			BlockchainHash string `json:"blockchain_hash"`
			QRCodeBase64   string `json:"qr_code_base64"`
		} `json:"batch_registration"`
	}
	if err := a.c.postMultipart(ctx, "/manufacturer/register-batch", fields, req.Image, &out); err != nil {
		return nil, err
	}
	if out.Status == "error" {
		return nil, &APIError{StatusCode: 200, Detail: out.Detail}
	}
	return &BatchRegistration{
		Status:         out.Status,
		BlockchainHash: out.BatchRegistration.BlockchainHash,
		QRCodeBase64:   out.BatchRegistration.QRCodeBase64,
	}, nil
}

// Batches lists registered batches, optionally filtered to one manufacturer.
func (a *ManufacturerAPI) Batches(ctx context.Context, manufacturerID string) ([]Batch, error) {
	path := "/manufacturer/batches"
	if manufacturerID != "" {
		path += "?manufacturer_id=" + url.QueryEscape(manufacturerID)
	}
	var raw json.RawMessage
	if err := a.c.getJSON(ctx, path, &raw); err != nil {
		return nil, err
	}
	return decodeBatchList(raw), nil
}

// RegenerateQR asks the backend to re-issue the QR code for a batch.
func (a *ManufacturerAPI) RegenerateQR(ctx context.Context, medicineID string) (string, error) {
	var out struct {
		QRCodeBase64 string `json:"qr_code_base64"`
	}
	path := fmt.Sprintf("/manufacturer/batch/%s/qr-regenerate", url.PathEscape(medicineID))
	if err := a.c.getJSON(ctx, path, &out); err != nil {
		return "", err
	}
	return out.QRCodeBase64, nil
}

// EncryptionKey fetches the backend's QR encryption key metadata.
func (a *ManufacturerAPI) EncryptionKey(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := a.c.getJSON(ctx, "/manufacturer/encryption-key", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Health pings the manufacturer route group.
func (a *ManufacturerAPI) Health(ctx context.Context) error {
	return a.c.getJSON(ctx, "/manufacturer/test", nil)
}
