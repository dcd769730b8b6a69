// Package scan models a pharmacy's in-progress verification attempt: the
// sequence from QR acquisition through image capture to submission and the
// backend's resolved judgment.
package scan

import (
	"errors"
	"time"

	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/validate"
)

// State is the workflow position of a scan session.
type State string

const (
	StateAwaitingQR    State = "AWAITING_QR"
	StateAwaitingImage State = "AWAITING_IMAGE"
	StateReadyToSubmit State = "READY_TO_SUBMIT"
	StateSubmitting    State = "SUBMITTING"
	StateResolved      State = "RESOLVED"
	StateFailed        State = "FAILED"
)

var (
	ErrEmptyQRPayload  = errors.New("qr payload is empty")
	ErrMissingQR       = errors.New("qr payload has not been captured")
	ErrMissingImage    = errors.New("package image has not been captured")
	ErrSubmitInFlight  = errors.New("submission already in progress")
	ErrSessionResolved = errors.New("session already resolved")
	ErrNotSubmitting   = errors.New("session is not submitting")
	ErrNotFailed       = errors.New("session has not failed")
)

// ImageArtifact is a captured or uploaded package image. Camera captures and
// file uploads are equivalent here.
type ImageArtifact struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// Session is one verification attempt. It is not safe for concurrent use;
// the owning store serializes access.
type Session struct {
	ID        string                       `json:"id"`
	State     State                        `json:"state"`
	QRPayload string                       `json:"qr_payload"`
	Image     *ImageArtifact               `json:"image,omitempty"`
	Outcome   *backend.VerificationOutcome `json:"outcome,omitempty"`
	LastError string                       `json:"last_error,omitempty"`
	StartedAt time.Time                    `json:"started_at"`
}

// NewSession starts a fresh session awaiting its QR payload.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		State:     StateAwaitingQR,
		StartedAt: time.Now().UTC(),
	}
}

// AttachQR records a decoded QR payload. A failed scan (empty payload) leaves
// the session untouched; the scanner may retry any number of times. Replacing
// an existing payload is allowed until submission starts.
func (s *Session) AttachQR(payload string) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if payload == "" {
		return ErrEmptyQRPayload
	}
	s.QRPayload = payload
	s.LastError = ""
	s.derive()
	return nil
}

// AttachImage records a captured or uploaded package image after local
// validation. The image may be attached before the QR payload; only the
// submit guard requires both.
func (s *Session) AttachImage(artifact ImageArtifact) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if res := validate.CheckImage(artifact.Size, artifact.ContentType); !res.IsValid {
		return errors.New(res.Message)
	}
	s.Image = &artifact
	s.LastError = ""
	s.derive()
	return nil
}

// BeginSubmit moves the session into Submitting. Both artifacts must be
// present; the guard holds here regardless of what earlier states claimed,
// since either artifact can be re-attached independently.
func (s *Session) BeginSubmit() error {
	switch s.State {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateResolved:
		return ErrSessionResolved
	}
	if s.QRPayload == "" {
		return ErrMissingQR
	}
	if s.Image == nil || s.Image.Size == 0 {
		return ErrMissingImage
	}
	s.State = StateSubmitting
	return nil
}

// Resolve records the backend's judgment. Resolved is terminal apart from an
// explicit Reset.
func (s *Session) Resolve(outcome *backend.VerificationOutcome) error {
	if s.State != StateSubmitting {
		return ErrNotSubmitting
	}
	s.Outcome = outcome
	s.LastError = ""
	s.State = StateResolved
	return nil
}

// Fail records a submission failure. Captured artifacts are preserved so the
// user can retry without re-scanning.
func (s *Session) Fail(message string) error {
	if s.State != StateSubmitting {
		return ErrNotSubmitting
	}
	s.LastError = message
	s.State = StateFailed
	return nil
}

// Retry returns a failed session to ReadyToSubmit.
func (s *Session) Retry() error {
	if s.State != StateFailed {
		return ErrNotFailed
	}
	s.derive()
	return nil
}

// Reset discards all artifacts and returns to AwaitingQR. This is the only
// route out of Resolved and is always user-initiated.
func (s *Session) Reset() {
	s.QRPayload = ""
	s.Image = nil
	s.Outcome = nil
	s.LastError = ""
	s.State = StateAwaitingQR
}

// Decision returns the resolved decision, or DecisionUnknown before
// resolution.
func (s *Session) Decision() backend.Decision {
	if s.Outcome == nil {
		return backend.DecisionUnknown
	}
	return s.Outcome.Decision
}

// NextActions lists the follow-up actions the resolved decision exposes.
// None of them fire automatically; the unknown branch exposes nothing.
func (s *Session) NextActions() []string {
	switch s.Decision() {
	case backend.DecisionAccept:
		return []string{"proceed_to_dispense"}
	case backend.DecisionReview:
		return []string{"escalate_to_supervisor"}
	case backend.DecisionReject:
		return []string{"block_stock", "notify_regulator"}
	default:
		return []string{}
	}
}

func (s *Session) mutable() error {
	switch s.State {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateResolved:
		return ErrSessionResolved
	}
	return nil
}

// derive recomputes the pre-submit state from which artifacts are present.
func (s *Session) derive() {
	switch {
	case s.QRPayload != "" && s.Image != nil:
		s.State = StateReadyToSubmit
	case s.QRPayload != "":
		s.State = StateAwaitingImage
	default:
		s.State = StateAwaitingQR
	}
}
