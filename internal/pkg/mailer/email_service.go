package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRegulatorNotice(toEmail, batchNumber, medicineID, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendRegulatorNotice mails the configured regulator contact about a rejected
// scan. Callers treat this as fire-and-forget; a failure is logged upstream
// but never surfaced into the verification flow.
func (s *emailService) SendRegulatorNotice(toEmail, batchNumber, medicineID, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Suspected counterfeit medicine: batch %s", batchNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Counterfeit Alert</h2>
			<p>A pharmacy scan was rejected by the verification system.</p>
			<ul>
				<li><b>Batch number:</b> %s</li>
				<li><b>Medicine ID:</b> %s</li>
				<li><b>Reason:</b> %s</li>
			</ul>
			<p>The stock has been flagged at the reporting pharmacy. Please investigate.</p>
		</div>
	`, batchNumber, medicineID, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send regulator notice: %w", err)
	}
	return nil
}
