package service

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/forkful/backend/config"
)

// Mailer sends plain-text email.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// EmailService sends mail over SMTP. When SMTP is not configured it logs
// the message instead, which keeps local development working without a
// mail server.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
}

// NewEmailService creates a mailer from the loaded configuration.
func NewEmailService(cfg *config.Config) *EmailService {
	from := cfg.EmailFrom
	if from == "" {
		from = "no-reply@forkful.app"
	}
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    from,
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		log.Printf("SMTP not configured, logging email:\nTo: %s\nSubject: %s\nBody:\n%s\n--- End Email ---", to, subject, body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	msg := strings.Join([]string{
		"From: " + s.fromEmail,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
