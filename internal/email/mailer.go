package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/pkg/logger"
)

// Message is a rendered transactional email
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when a relay is configured and a mailer that
// only logs otherwise
func New(cfg config.EmailConfig, log *logger.Logger) Mailer {
	if !cfg.Enabled() {
		log.Warn("SMTP not configured, emails will be logged and dropped")
		return &NoopMailer{logger: log}
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPMailer creates an SMTP mailer
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	from := cfg.From
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From)
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers msg
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}

// NoopMailer drops messages after logging them
type NoopMailer struct {
	logger *logger.Logger
}

// Send logs msg
func (m *NoopMailer) Send(ctx context.Context, msg Message) error {
	m.logger.WithFields(map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Debug("Email dropped (SMTP not configured)")
	return nil
}
