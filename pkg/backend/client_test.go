package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyMedicineHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pharmacy/verify-medicine", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "ABC123", r.FormValue("qr_data"))

		file, header, err := r.FormFile("scanned_image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "package.jpg", header.Filename)

		json.NewEncoder(w).Encode(map[string]any{
			"verification_result": map[string]any{
				"ai_decision": "ACCEPT",
				"trust_score": 92,
				"confidence":  0.97,
				"trust_level": "High",
			},
			"qr_data":         map[string]any{"medicine_id": "MED-1", "batch_number": "B-77"},
			"recommendations": []string{"Safe to dispense"},
			"blockchain_verification": map[string]any{
				"blockchain_verified": true,
				"database_match":      true,
				"medicine_found":      true,
				"hash_match":          true,
			},
			"image_matching": map[string]any{"match_score": 0.93},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	outcome, err := c.Pharmacy.VerifyMedicine(context.Background(), "ABC123", &Upload{
		FileName:    "package.jpg",
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("fake-jpeg-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, DecisionAccept, outcome.Decision)
	assert.Equal(t, 92.0, outcome.TrustScore)
	assert.Equal(t, "MED-1", outcome.QRData.MedicineID)
	assert.Equal(t, "B-77", outcome.QRData.BatchNumber)
	assert.True(t, outcome.Blockchain.HashMatch)
	assert.Equal(t, 0.93, outcome.ImageMatching.MatchScore)
	assert.Equal(t, []string{"Safe to dispense"}, outcome.Recommendations)
}

func TestVerifyMedicineUnknownDecision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"verification_result": map[string]any{"ai_decision": "MAYBE", "trust_score": 50},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	outcome, err := c.Pharmacy.VerifyMedicine(context.Background(), "QR", &Upload{
		FileName: "p.png", ContentType: "image/png", Reader: strings.NewReader("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, DecisionUnknown, outcome.Decision)
	assert.Equal(t, 50.0, outcome.TrustScore)
}

func TestVerifyMedicineMissingResultBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"qr_data":         map[string]any{"medicine_id": "MED-2"},
			"recommendations": []string{"Escalate"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	outcome, err := c.Pharmacy.VerifyMedicine(context.Background(), "QR", &Upload{
		FileName: "p.png", ContentType: "image/png", Reader: strings.NewReader("x"),
	})
	require.NoError(t, err)
	// Degrades to an unknown decision but keeps the rest of the payload.
	assert.Equal(t, DecisionUnknown, outcome.Decision)
	assert.Equal(t, "MED-2", outcome.QRData.MedicineID)
	assert.Equal(t, []string{"Escalate"}, outcome.Recommendations)
}

func TestAPIErrorCarriesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{"detail": "Invalid QR payload"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Pharmacy.VerifyMedicine(context.Background(), "bad", &Upload{
		FileName: "p.png", ContentType: "image/png", Reader: strings.NewReader("x"),
	})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Invalid QR payload", apiErr.Detail)
	assert.Equal(t, "Invalid QR payload", apiErr.UserMessage())
}

func TestAPIErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Watchdog.StartMonitoring(context.Background())
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
	assert.NotEmpty(t, apiErr.UserMessage())
}

func TestNetworkErrorIsNotAPIError(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here
	err := c.Pharmacy.Health(context.Background())
	require.Error(t, err)
	_, ok := AsAPIError(err)
	assert.False(t, ok)
}

func TestRegisterBatchSendsAllFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/manufacturer/register-batch", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(10<<20))

		assert.Equal(t, "Paracetamol", r.FormValue("medicine_name"))
		assert.Equal(t, "Acme", r.FormValue("manufacturer"))
		assert.Equal(t, "B-1", r.FormValue("batch_number"))
		assert.Equal(t, "2028-01-01", r.FormValue("expiry_date"))
		assert.Equal(t, "10000", r.FormValue("quantity_manufactured"))

		_, _, err := r.FormFile("image")
		require.NoError(t, err)

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"batch_registration": map[string]any{
				"blockchain_hash": "0xdeadbeef",
				"qr_code_base64":  "aGVsbG8=",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	reg, err := c.Manufacturer.RegisterBatch(context.Background(), RegisterBatchRequest{
		MedicineName: "Paracetamol",
		Manufacturer: "Acme",
		BatchNumber:  "B-1",
		ExpiryDate:   "2028-01-01",
		Ingredients:  "stuff",
		Usage:        "pain",
		Storage:      "cool",
		Quantity:     10000,
		Image: &Upload{
			FileName: "pack.jpg", ContentType: "image/jpeg", Reader: strings.NewReader("img"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", reg.BlockchainHash)
	assert.Equal(t, "aGVsbG8=", reg.QRCodeBase64)
}

func TestBatchesNormalizesBothEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"enveloped", `{"batches":[{"batch_number":"B-1"},{"batch_number":"B-2"}]}`, 2},
		{"bare array", `[{"batch_number":"B-1"}]`, 1},
		{"empty object", `{}`, 0},
		{"null batches", `{"batches":null}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			batches, err := c.Manufacturer.Batches(context.Background(), "")
			require.NoError(t, err)
			require.NotNil(t, batches)
			assert.Len(t, batches, tt.want)
		})
	}
}

func TestBatchesManufacturerFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "m-42", r.URL.Query().Get("manufacturer_id"))
		w.Write([]byte(`{"batches":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Manufacturer.Batches(context.Background(), "m-42")
	require.NoError(t, err)
}

func TestParseDecision(t *testing.T) {
	assert.Equal(t, DecisionAccept, ParseDecision("ACCEPT"))
	assert.Equal(t, DecisionReview, ParseDecision("REVIEW"))
	assert.Equal(t, DecisionReject, ParseDecision("REJECT"))
	assert.Equal(t, DecisionUnknown, ParseDecision("accept"))
	assert.Equal(t, DecisionUnknown, ParseDecision(""))
	assert.Equal(t, DecisionUnknown, ParseDecision("BANANA"))
}
