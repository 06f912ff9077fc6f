package email

import (
	"fmt"
	"net/smtp"

	"github.com/ladderhq/ladder/internal/pkg/logger"
)

// Sender delivers transactional email
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds SMTP server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends email through an SMTP relay
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates an SMTP-backed sender
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send delivers one message
func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.config.From, to, subject, body,
	))

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Debug().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

// LogSender writes outgoing mail to the log instead of delivering it. Used in
// development when no SMTP relay is configured.
type LogSender struct{}

// NewLogSender creates a log-only sender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message instead of delivering it
func (s *LogSender) Send(to, subject, body string) error {
	logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("Email delivery skipped (no SMTP configured)")
	return nil
}

// NewSender picks the SMTP sender when a host is configured, otherwise the
// log-only sender
func NewSender(config SMTPConfig) Sender {
	if config.Host == "" {
		logger.Warn().Msg("SMTP host not configured, emails will be logged only")
		return NewLogSender()
	}
	return NewSMTPSender(config)
}
