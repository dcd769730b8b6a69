package service

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pharmachain-portal/internal/dto"
	"pharmachain-portal/internal/pkg/logger"
	"pharmachain-portal/internal/pkg/mailer"
	"pharmachain-portal/internal/pkg/serverutils"
	"pharmachain-portal/internal/repository/memory"
	"pharmachain-portal/pkg/backend"
	"pharmachain-portal/pkg/events"
	"pharmachain-portal/pkg/format"
	portalnats "pharmachain-portal/pkg/nats"
	"pharmachain-portal/pkg/scan"
)

type IVerificationService interface {
	Start(ctx context.Context) (*dto.StartScanResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error)
	AttachQR(ctx context.Context, sessionID, qrData string) (*dto.ScanSessionResponse, error)
	AttachImage(ctx context.Context, sessionID string, artifact scan.ImageArtifact) (*dto.ScanSessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*dto.VerificationResultResponse, error)
	DetailedVerify(ctx context.Context, sessionID string) (map[string]any, error)
	Retry(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error)
	Reset(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error)
	NotifyRegulator(ctx context.Context, sessionID, reason string) error
}

type verificationService struct {
	mu        sync.Mutex
	sessions  *memory.ScanSessionRepository
	client    *backend.Client
	publisher *portalnats.Publisher
	mailer    mailer.IEmailService
	regulator string
	logger    logger.ILogger
}

func NewVerificationService(
	sessions *memory.ScanSessionRepository,
	client *backend.Client,
	publisher *portalnats.Publisher,
	emailService mailer.IEmailService,
	regulatorEmail string,
	log logger.ILogger,
) IVerificationService {
	return &verificationService{
		sessions:  sessions,
		client:    client,
		publisher: publisher,
		mailer:    emailService,
		regulator: regulatorEmail,
		logger:    log,
	}
}

func (s *verificationService) Start(ctx context.Context) (*dto.StartScanResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := scan.NewSession(uuid.NewString())
	s.sessions.Save(session)

	s.logger.Info("Verification", "Scan session started", map[string]interface{}{
		"session_id": session.ID,
	})
	return &dto.StartScanResponse{SessionID: session.ID, State: string(session.State)}, nil
}

func (s *verificationService) Get(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(session), nil
}

// AttachQR records a decoded QR payload on the session. An empty payload is a
// failed scan and leaves the session where it was.
func (s *verificationService) AttachQR(ctx context.Context, sessionID, qrData string) (*dto.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.AttachQR(qrData); err != nil {
		return nil, mapSessionError(err, "qr_data")
	}
	s.sessions.Save(session)
	return sessionResponse(session), nil
}

func (s *verificationService) AttachImage(ctx context.Context, sessionID string, artifact scan.ImageArtifact) (*dto.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.AttachImage(artifact); err != nil {
		return nil, mapSessionError(err, "scanned_image")
	}
	s.sessions.Save(session)
	return sessionResponse(session), nil
}

// Submit sends the captured artifacts to the backend and resolves the
// session with its judgment. A backend failure moves the session to Failed
// with both artifacts preserved, so the user can retry without re-scanning.
func (s *verificationService) Submit(ctx context.Context, sessionID string) (*dto.VerificationResultResponse, error) {
	s.mu.Lock()
	session, err := s.load(sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := session.BeginSubmit(); err != nil {
		s.mu.Unlock()
		return nil, mapSessionError(err, "")
	}
	s.sessions.Save(session)
	qrPayload, image := session.QRPayload, session.Image
	s.mu.Unlock()

	// The Submitting state blocks every other mutation, so the lock is not
	// held across the backend round trip.
	outcome, err := s.client.Pharmacy.VerifyMedicine(ctx, qrPayload, &backend.Upload{
		FileName:    image.FileName,
		ContentType: image.ContentType,
		Reader:      bytes.NewReader(image.Data),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		message := "Verification failed. Please try again."
		if apiErr, ok := backend.AsAPIError(err); ok {
			message = apiErr.UserMessage()
		}
		if failErr := session.Fail(message); failErr == nil {
			s.sessions.Save(session)
		}
		s.logger.Error("Verification", "Submission failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := session.Resolve(outcome); err != nil {
		return nil, err
	}
	s.sessions.Save(session)

	s.logger.Info("Verification", "Scan resolved", map[string]interface{}{
		"session_id":  sessionID,
		"decision":    string(outcome.Decision),
		"trust_score": outcome.TrustScore,
	})
	s.audit(ctx, events.ScanResolved(sessionID, string(outcome.Decision), outcome.TrustScore))

	return resultResponse(session), nil
}

// DetailedVerify runs the extended diagnostics flow with the session's
// captured artifacts. It never moves the session; the regular Submit still
// decides the outcome.
func (s *verificationService) DetailedVerify(ctx context.Context, sessionID string) (map[string]any, error) {
	s.mu.Lock()
	session, err := s.load(sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session.QRPayload == "" {
		s.mu.Unlock()
		return nil, mapSessionError(scan.ErrMissingQR, "")
	}
	if session.Image == nil {
		s.mu.Unlock()
		return nil, mapSessionError(scan.ErrMissingImage, "")
	}
	qrPayload, image := session.QRPayload, session.Image
	s.mu.Unlock()

	return s.client.Pharmacy.DetailedVerify(ctx, qrPayload, &backend.Upload{
		FileName:    image.FileName,
		ContentType: image.ContentType,
		Reader:      bytes.NewReader(image.Data),
	})
}

func (s *verificationService) Retry(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Retry(); err != nil {
		return nil, mapSessionError(err, "")
	}
	s.sessions.Save(session)
	return sessionResponse(session), nil
}

func (s *verificationService) Reset(ctx context.Context, sessionID string) (*dto.ScanSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(sessionID)
	if err != nil {
		return nil, err
	}
	session.Reset()
	s.sessions.Save(session)
	return sessionResponse(session), nil
}

// NotifyRegulator mails the configured regulator contact about a rejected
// scan. It only fires for sessions resolved as REJECT; nothing ever sends
// automatically.
func (s *verificationService) NotifyRegulator(ctx context.Context, sessionID, reason string) error {
	s.mu.Lock()
	session, err := s.load(sessionID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if session.Decision() != backend.DecisionReject {
		s.mu.Unlock()
		return fiber.NewError(fiber.StatusConflict, "Only rejected scans can be reported")
	}
	outcome := session.Outcome
	s.mu.Unlock()

	if reason == "" {
		reason = "Verification rejected by the authentication system"
	}

	if s.mailer != nil && s.regulator != "" {
		err := s.mailer.SendRegulatorNotice(s.regulator, outcome.QRData.BatchNumber, outcome.QRData.MedicineID, reason)
		if err != nil {
			s.logger.Error("Verification", "Regulator notice failed", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			return fiber.NewError(fiber.StatusBadGateway, "Could not reach the regulator mail service")
		}
	} else {
		s.logger.Warn("Verification", "Regulator email not configured, notice logged only", map[string]interface{}{
			"session_id":   sessionID,
			"batch_number": outcome.QRData.BatchNumber,
			"reason":       reason,
		})
	}

	s.audit(ctx, events.RegulatorNotified(sessionID, outcome.QRData.BatchNumber))
	return nil
}

func (s *verificationService) load(sessionID string) (*scan.Session, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "Scan session not found")
	}
	return session, nil
}

func (s *verificationService) audit(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Verification", "Audit publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// mapSessionError turns workflow guard violations into the error shapes the
// handler layer renders: per-field validation messages for missing
// artifacts, conflicts for state violations.
func mapSessionError(err error, field string) error {
	switch {
	case errors.Is(err, scan.ErrMissingQR):
		return serverutils.NewValidationError(map[string]string{
			"qr_data": "Please scan or enter QR code data",
		})
	case errors.Is(err, scan.ErrMissingImage):
		return serverutils.NewValidationError(map[string]string{
			"scanned_image": "Please capture or upload medicine package image",
		})
	case errors.Is(err, scan.ErrEmptyQRPayload):
		return serverutils.NewValidationError(map[string]string{
			"qr_data": "Please scan or enter QR code data",
		})
	case errors.Is(err, scan.ErrSubmitInFlight):
		return fiber.NewError(fiber.StatusConflict, "A submission is already in progress")
	case errors.Is(err, scan.ErrSessionResolved):
		return fiber.NewError(fiber.StatusConflict, "This scan has already been resolved. Start a new scan.")
	case errors.Is(err, scan.ErrNotFailed):
		return fiber.NewError(fiber.StatusConflict, "Only a failed submission can be retried")
	case field != "":
		return serverutils.NewValidationError(map[string]string{field: err.Error()})
	default:
		return err
	}
}

func sessionResponse(session *scan.Session) *dto.ScanSessionResponse {
	res := &dto.ScanSessionResponse{
		SessionID: session.ID,
		State:     string(session.State),
		HasQR:     session.QRPayload != "",
		HasImage:  session.Image != nil,
		LastError: session.LastError,
	}
	if session.QRPayload != "" {
		res.QRPreview = format.TruncateHash(session.QRPayload, 24)
	}
	if session.Image != nil {
		res.ImageName = session.Image.FileName
		res.ImageSize = session.Image.Size
	}
	return res
}

func resultResponse(session *scan.Session) *dto.VerificationResultResponse {
	outcome := session.Outcome
	tier := format.TrustScore(outcome.TrustScore)

	return &dto.VerificationResultResponse{
		SessionID:        session.ID,
		Decision:         string(outcome.Decision),
		DecisionCategory: format.DecisionCategory(string(outcome.Decision)),
		TrustScore: dto.TrustScoreView{
			Score:    outcome.TrustScore,
			Label:    tier.Label,
			Category: tier.Category,
		},
		Confidence:      outcome.Confidence,
		TrustLevel:      outcome.TrustLevel,
		MedicineID:      outcome.QRData.MedicineID,
		BatchNumber:     outcome.QRData.BatchNumber,
		MedicineDetails: outcome.MedicineDetails,
		Blockchain: map[string]bool{
			"blockchain_verified": outcome.Blockchain.BlockchainVerified,
			"database_match":      outcome.Blockchain.DatabaseMatch,
			"medicine_found":      outcome.Blockchain.MedicineFound,
			"hash_match":          outcome.Blockchain.HashMatch,
		},
		ImageMatch: map[string]any{
			"match_score":      outcome.ImageMatching.MatchScore,
			"similarity":       outcome.ImageMatching.Similarity,
			"match_confidence": outcome.ImageMatching.MatchConfidence,
			"ai_analysis":      outcome.ImageMatching.AIAnalysis,
		},
		Recommendations: outcome.Recommendations,
		NextActions:     session.NextActions(),
	}
}
