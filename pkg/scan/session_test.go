package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain-portal/pkg/backend"
)

func jpeg(size int64) ImageArtifact {
	return ImageArtifact{FileName: "pack.jpg", ContentType: "image/jpeg", Size: size, Data: []byte("x")}
}

func TestHappyPath(t *testing.T) {
	s := NewSession("s1")
	assert.Equal(t, StateAwaitingQR, s.State)

	require.NoError(t, s.AttachQR("ABC123"))
	assert.Equal(t, StateAwaitingImage, s.State)

	require.NoError(t, s.AttachImage(jpeg(200*1024)))
	assert.Equal(t, StateReadyToSubmit, s.State)

	require.NoError(t, s.BeginSubmit())
	assert.Equal(t, StateSubmitting, s.State)

	require.NoError(t, s.Resolve(&backend.VerificationOutcome{Decision: backend.DecisionAccept, TrustScore: 92}))
	assert.Equal(t, StateResolved, s.State)
	assert.Equal(t, backend.DecisionAccept, s.Decision())
	assert.Equal(t, []string{"proceed_to_dispense"}, s.NextActions())
}

func TestRejectBranchExposesBothActionsAndFiresNothing(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Resolve(&backend.VerificationOutcome{Decision: backend.DecisionReject, TrustScore: 15}))

	assert.Equal(t, []string{"block_stock", "notify_regulator"}, s.NextActions())
}

func TestReviewBranch(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Resolve(&backend.VerificationOutcome{Decision: backend.DecisionReview}))

	assert.Equal(t, []string{"escalate_to_supervisor"}, s.NextActions())
}

func TestUnknownDecisionExposesNoActions(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Resolve(&backend.VerificationOutcome{Decision: backend.DecisionUnknown}))

	assert.Empty(t, s.NextActions())
}

func TestSubmitGuardRequiresBothArtifacts(t *testing.T) {
	s := NewSession("s1")
	assert.ErrorIs(t, s.BeginSubmit(), ErrMissingQR)

	require.NoError(t, s.AttachQR("QR"))
	assert.ErrorIs(t, s.BeginSubmit(), ErrMissingImage)
	assert.Equal(t, StateAwaitingImage, s.State, "failed guard must not transition")

	// Image-only session: capture is reachable before scanning, but submit
	// still demands the QR payload.
	s2 := NewSession("s2")
	require.NoError(t, s2.AttachImage(jpeg(1024)))
	assert.Equal(t, StateAwaitingQR, s2.State)
	assert.ErrorIs(t, s2.BeginSubmit(), ErrMissingQR)
}

func TestEmptyQRScanKeepsAcceptingAttempts(t *testing.T) {
	s := NewSession("s1")
	assert.ErrorIs(t, s.AttachQR(""), ErrEmptyQRPayload)
	assert.Equal(t, StateAwaitingQR, s.State)

	// Retry succeeds.
	require.NoError(t, s.AttachQR("second-attempt"))
	assert.Equal(t, StateAwaitingImage, s.State)
}

func TestInvalidImageRejectedLocally(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))

	err := s.AttachImage(ImageArtifact{FileName: "doc.pdf", ContentType: "application/pdf", Size: 1024})
	require.Error(t, err)
	assert.Nil(t, s.Image)
	assert.Equal(t, StateAwaitingImage, s.State)

	err = s.AttachImage(ImageArtifact{FileName: "huge.jpg", ContentType: "image/jpeg", Size: 6 * 1024 * 1024})
	require.Error(t, err)
	assert.Nil(t, s.Image)
}

func TestFailedSubmitPreservesArtifacts(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Fail("backend unreachable"))

	assert.Equal(t, StateFailed, s.State)
	assert.Equal(t, "backend unreachable", s.LastError)
	assert.Equal(t, "QR", s.QRPayload)
	require.NotNil(t, s.Image)

	// Retry goes straight back to ReadyToSubmit without re-acquisition.
	require.NoError(t, s.Retry())
	assert.Equal(t, StateReadyToSubmit, s.State)
	require.NoError(t, s.BeginSubmit())
}

func TestResetIsTheOnlyRouteBackToAwaitingQR(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())
	require.NoError(t, s.Resolve(&backend.VerificationOutcome{Decision: backend.DecisionAccept}))

	// Resolved sessions refuse further artifact changes.
	assert.ErrorIs(t, s.AttachQR("other"), ErrSessionResolved)
	assert.ErrorIs(t, s.BeginSubmit(), ErrSessionResolved)

	s.Reset()
	assert.Equal(t, StateAwaitingQR, s.State)
	assert.Empty(t, s.QRPayload)
	assert.Nil(t, s.Image)
	assert.Nil(t, s.Outcome)
}

func TestNoMutationWhileSubmitting(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	require.NoError(t, s.BeginSubmit())

	assert.ErrorIs(t, s.AttachQR("QR2"), ErrSubmitInFlight)
	assert.ErrorIs(t, s.AttachImage(jpeg(2048)), ErrSubmitInFlight)
	assert.ErrorIs(t, s.BeginSubmit(), ErrSubmitInFlight)
}

func TestReattachingOneArtifactKeepsGuardHonest(t *testing.T) {
	s := NewSession("s1")
	require.NoError(t, s.AttachQR("QR"))
	require.NoError(t, s.AttachImage(jpeg(1024)))
	assert.Equal(t, StateReadyToSubmit, s.State)

	// Replacing the QR payload alone keeps the session submittable.
	require.NoError(t, s.AttachQR("QR-v2"))
	assert.Equal(t, StateReadyToSubmit, s.State)
	require.NoError(t, s.BeginSubmit())
}
