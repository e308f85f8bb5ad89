package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"jobdesk-api/internal/config"
)

// Mailer sends outbound email
type Mailer interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends mail over SMTP using gomail
type SMTPMailer struct {
	cfg *config.SMTPConfig
}

// NewSMTPMailer creates a mailer from SMTP configuration
func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single message. A plain-text body is required; when an
// HTML body is given it is attached as the preferred alternative.
func (m *SMTPMailer) Send(to, subject, textBody, htmlBody string) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}
