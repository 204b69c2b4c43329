package services

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Mailer delivers outbound mail. Implementations are called from the mail
// processor only, never from a request path.
type Mailer interface {
	SendWelcome(ctx context.Context, recipient, username string) error
}

// SMTPConfig carries the settings for the SMTP-backed mailer.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer returns a Mailer that sends through a plain-auth SMTP relay.
func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendWelcome(_ context.Context, recipient, username string) error {
	body := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: Welcome to TaskMaster!\r\n\r\nHi %s,\r\n\r\nWelcome to TaskMaster. Your account has been successfully created.\r\n\r\nHappy Tasking!\r\n",
		recipient, m.cfg.From, username,
	)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, []byte(body))
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a Mailer that only logs deliveries. Used when no SMTP
// relay is configured.
func NewLogMailer(logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &logMailer{logger: logger}
}

func (m *logMailer) SendWelcome(_ context.Context, recipient, username string) error {
	m.logger.Info("welcome mail (log only)",
		zap.String("recipient", recipient),
		zap.String("username", username))
	return nil
}
