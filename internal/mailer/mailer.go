// Package mailer relays contact-form messages to the configured inbox
// over SMTP. Delivery is best effort; callers treat a send failure as a
// logged event, not a request failure.
package mailer

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/mut-reserve/mutreserve/internal/config"
)

// ErrDisabled is returned when the relay is not configured.
var ErrDisabled = errors.New("smtp relay is disabled")

// Message is a contact-form submission.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Mailer sends contact-form messages through a single SMTP account.
type Mailer struct {
	cfg config.SMTP
}

// New creates a mailer from the SMTP settings.
func New(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether the relay is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled
}

// Send relays the message to the configured inbox. The sender address is
// the relay account; the submitter's address goes into Reply-To so a
// reply reaches them directly.
func (m *Mailer) Send(msg Message) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	mail := gomail.NewMessage()
	mail.SetHeader("From", m.cfg.Username)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", fmt.Sprintf("[contact] %s", msg.Subject))
	mail.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Body))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	if err := dialer.DialAndSend(mail); err != nil {
		log.Error().Err(err).Str("to", m.cfg.To).Msg("contact mail relay failed")

		return err
	}

	return nil
}
