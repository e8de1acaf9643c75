package notify

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"
	"github.com/zenflow/backend/pkg/config"
)

// SMTPMailer sends transactional mail over SMTP.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendWelcomeEmail(ctx context.Context, to, firstName string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}
	msg.Subject("Welcome to ZenFlow!")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nYour organization is ready. Pick a plan and start managing your business with ZenFlow.\n\nThe ZenFlow Team\n",
		firstName,
	))

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, msg)
}
