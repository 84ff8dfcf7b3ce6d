package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
)

// Config holds the SMTP relay settings. With SendGrid the username is the
// literal "apikey" and the password is the API key.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPMailer submits messages over SMTP with STARTTLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (m *SMTPMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", msg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(gm) }()

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
