package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/repository/memory"
	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/format"
	"pharmachain-portal/pkg/scan"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) Recent(string, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newTestVerificationService(t *testing.T, handler http.HandlerFunc) IVerificationService {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewVerificationService(memory.NewScanSessionRepository(), backend.New(ts.URL), nil, nil, "", nopLogger{})
}

func acceptHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pharmacy/verify-medicine", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"verification_result": map[string]any{
				"ai_decision": "ACCEPT",
				"trust_score": 92.5,
				"confidence":  0.97,
				"trust_level": "HIGH",
			},
			"qr_data": map[string]any{
				"medicine_id":  "MED-1",
				"batch_number": "B-42",
			},
			"recommendations": []string{"Dispense as normal"},
		})
	}
}

func packImage() scan.ImageArtifact {
	return scan.ImageArtifact{
		FileName:    "pack.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Data:        []byte("jpegbytes"),
	}
}

func TestScanWorkflowResolvesAccept(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(scan.StateAwaitingQR), started.State)

	session, err := svc.AttachQR(ctx, started.SessionID, "ENCRYPTED-QR")
	require.NoError(t, err)
	assert.True(t, session.HasQR)
	assert.Equal(t, string(scan.StateAwaitingImage), session.State)

	session, err = svc.AttachImage(ctx, started.SessionID, packImage())
	require.NoError(t, err)
	assert.Equal(t, string(scan.StateReadyToSubmit), session.State)

	res, err := svc.Submit(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT", res.Decision)
	assert.Equal(t, format.CategorySuccess, res.DecisionCategory)
	assert.Equal(t, 92.5, res.TrustScore.Score)
	assert.Equal(t, "High", res.TrustScore.Label)
	assert.Equal(t, "MED-1", res.MedicineID)
	assert.Equal(t, "B-42", res.BatchNumber)
	assert.Equal(t, []string{"proceed_to_dispense"}, res.NextActions)
}

func TestSubmitWithoutQRReturnsFieldMessage(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, started.SessionID)
	require.Error(t, err)

	var valErr *serverutils.RequestValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Please scan or enter QR code data", valErr.Fields["qr_data"])
}

func TestSubmitWithoutImageReturnsFieldMessage(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.AttachQR(ctx, started.SessionID, "QR")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, started.SessionID)
	require.Error(t, err)

	var valErr *serverutils.RequestValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Please capture or upload medicine package image", valErr.Fields["scanned_image"])
}

func TestBackendFailurePreservesArtifactsForRetry(t *testing.T) {
	svc := newTestVerificationService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"detail": "AI agent is offline"})
	})
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.AttachQR(ctx, started.SessionID, "QR")
	require.NoError(t, err)
	_, err = svc.AttachImage(ctx, started.SessionID, packImage())
	require.NoError(t, err)

	_, err = svc.Submit(ctx, started.SessionID)
	require.Error(t, err)

	session, err := svc.Get(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(scan.StateFailed), session.State)
	assert.True(t, session.HasQR)
	assert.True(t, session.HasImage)
	assert.Equal(t, "AI agent is offline", session.LastError)

	session, err = svc.Retry(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(scan.StateReadyToSubmit), session.State)
}

func TestNotifyRegulatorRequiresRejectedScan(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.AttachQR(ctx, started.SessionID, "QR")
	require.NoError(t, err)
	_, err = svc.AttachImage(ctx, started.SessionID, packImage())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, started.SessionID)
	require.NoError(t, err)

	err = svc.NotifyRegulator(ctx, started.SessionID, "looks fake")
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusConflict, fiberErr.Code)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestResetClearsResolvedSession(t *testing.T) {
	svc := newTestVerificationService(t, acceptHandler(t))
	ctx := context.Background()

	started, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.AttachQR(ctx, started.SessionID, "QR")
	require.NoError(t, err)
	_, err = svc.AttachImage(ctx, started.SessionID, packImage())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, started.SessionID)
	require.NoError(t, err)

	session, err := svc.Reset(ctx, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(scan.StateAwaitingQR), session.State)
	assert.False(t, session.HasQR)
	assert.False(t, session.HasImage)
}
