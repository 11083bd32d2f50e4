package notification

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

// EmailDispatcher delivers events over SMTP.
type EmailDispatcher struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

// NewEmailDispatcher creates a dispatcher for the configured SMTP server.
func NewEmailDispatcher(cfg config.EmailConfig) *EmailDispatcher {
	return &EmailDispatcher{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

// Dispatch sends the event to the principal's email address. Events for
// principals without an address are skipped.
func (d *EmailDispatcher) Dispatch(_ context.Context, event Event) error {
	to := event.To.Email()
	if to == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.cfg.FromAddress, d.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", renderSubject(event))
	m.SetBody("text/plain", renderBody(event))

	return d.dialer.DialAndSend(m)
}
