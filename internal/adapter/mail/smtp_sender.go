package mail

import (
	"context"
	"fmt"

	"github.com/quocluongg/telectric-web-sub001/configs"
	"github.com/quocluongg/telectric-web-sub001/internal/logging"
	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers notification messages over SMTP. Without a credential
// pair it runs in simulation mode: the would-be message is logged and the
// send reports success without any network call. That is a developer
// convenience, not a production failure mode.
type SMTPSender struct {
	dialer   *gomail.Dialer
	simulate bool
}

func NewSMTPSender(cfg configs.Config) *SMTPSender {
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
		return &SMTPSender{simulate: true}
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg usecase.MailMessage) error {
	if s.simulate {
		logging.FromCtx(ctx).Info("smtp simulation: message not sent",
			"to", msg.To, "subject", msg.Subject, "body_bytes", len(msg.HTMLBody))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	// gomail has no context support; run the blocking send aside so the
	// caller-supplied deadline still applies.
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ usecase.MailSender = (*SMTPSender)(nil)
