package email

import (
	"fmt"
	"net/smtp"
)

// SMTPServerConfig holds all the necessary configuration for connecting to
// an SMTP server. An empty Host disables sending entirely.
type SMTPServerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string // The "From" email address
	Inbox    string // Where contact submissions are forwarded
}

// EmailService forwards contact form submissions to the configured inbox.
type EmailService struct {
	config SMTPServerConfig
	auth   smtp.Auth
}

// NewEmailService creates a new service for sending emails.
func NewEmailService(config SMTPServerConfig) *EmailService {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)
	return &EmailService{
		config: config,
		auth:   auth,
	}
}

// Enabled reports whether forwarding is configured. Callers skip sending
// when it isn't; submissions are persisted either way.
func (s *EmailService) Enabled() bool {
	return s.config.Host != "" && s.config.Inbox != ""
}

// ForwardContactSubmission sends a copy of a contact form submission to the
// site inbox. Best effort: the submission is already stored by the time
// this runs, so a delivery failure is only logged by the caller.
func (s *EmailService) ForwardContactSubmission(name, fromEmail, phone, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	subject := fmt.Sprintf("New contact submission from %s", name)

	if phone == "" {
		phone = "(not provided)"
	}

	text := fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n",
		name,
		fromEmail,
		phone,
		body,
	)

	message := []byte(
		"To: " + s.config.Inbox + "\r\n" +
			"From: " + s.config.Sender + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" +
			text + "\r\n")

	if err := smtp.SendMail(addr, s.auth, s.config.Sender, []string{s.config.Inbox}, message); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}

	return nil
}
