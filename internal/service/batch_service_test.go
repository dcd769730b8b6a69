package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/pkg/backend"
)

func newTestBatchService(t *testing.T, handler http.HandlerFunc) IBatchService {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewBatchService(backend.New(ts.URL), nil, nopLogger{})
}

func validBatchRequest() *dto.RegisterBatchRequest {
	return &dto.RegisterBatchRequest{
		MedicineName: "Paracetamol 500mg",
		Manufacturer: "Acme Pharma",
		BatchNumber:  "BATCH-2026-001",
		ExpiryDate:   "2030-01-01",
		Ingredients:  "Paracetamol",
		Quantity:     10000,
	}
}

func validImage() *ImageUpload {
	return &ImageUpload{
		FileName:    "pack.png",
		ContentType: "image/png",
		Size:        4096,
		Data:        []byte("pngbytes"),
	}
}

func TestRegisterBatch(t *testing.T) {
	svc := newTestBatchService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/manufacturer/register-batch", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "Paracetamol 500mg", r.FormValue("medicine_name"))
		assert.Equal(t, "10000", r.FormValue("quantity_manufactured"))

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"batch_registration": map[string]any{
				"blockchain_hash": "0xabcdef0123456789deadbeef",
				"qr_code_base64":  "aGVsbG8=",
			},
		})
	})

	res, err := svc.Register(context.Background(), validBatchRequest(), validImage())
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789deadbeef", res.BlockchainHash)
	assert.Equal(t, "0xabcdef01...adbeef", res.HashDisplay)
	assert.Equal(t, "aGVsbG8=", res.QRCodeBase64)
}

func TestRegisterBatchRejectsInvalidForm(t *testing.T) {
	svc := newTestBatchService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called for an invalid form")
	})

	req := validBatchRequest()
	req.MedicineName = "   "
	req.ExpiryDate = "2020-01-01"
	req.Quantity = 0

	_, err := svc.Register(context.Background(), req, validImage())
	require.Error(t, err)

	var valErr *serverutils.RequestValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Medicine name is required", valErr.Fields["medicine_name"])
	assert.Equal(t, "Expiry date must be in the future", valErr.Fields["expiry_date"])
	assert.Equal(t, "Valid quantity is required", valErr.Fields["quantity_manufactured"])
}

func TestRegisterBatchRejectsBadImage(t *testing.T) {
	svc := newTestBatchService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called for an invalid image")
	})

	image := validImage()
	image.ContentType = "application/pdf"

	_, err := svc.Register(context.Background(), validBatchRequest(), image)
	require.Error(t, err)

	var valErr *serverutils.RequestValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "image")
}

func TestRegisterBatchSurfacesBackendSoftError(t *testing.T) {
	svc := newTestBatchService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "error",
			"detail": "Manufacturer is not registered",
		})
	})

	_, err := svc.Register(context.Background(), validBatchRequest(), validImage())
	require.Error(t, err)

	apiErr, ok := backend.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Manufacturer is not registered", apiErr.UserMessage())
}

func TestListBatchesDerivesHashDisplay(t *testing.T) {
	svc := newTestBatchService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"batches": []map[string]any{
				{
					"medicine_id":     "MED-1",
					"medicine_name":   "Paracetamol 500mg",
					"batch_number":    "BATCH-2026-001",
					"blockchain_hash": "0x0011223344556677889900aabbcc",
				},
			},
		})
	})

	res, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, res.Batches, 1)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "0x00112233...aabbcc", res.Batches[0].HashDisplay)
}
