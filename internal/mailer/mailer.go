// Package mailer delivers transactional email over SMTP.  The mailer is
// built once at startup and injected into the queue consumer, so tests
// and broker-less development runs can swap in a no-op sender.
package mailer

import (
	"log"

	"gopkg.in/gomail.v2"
)

// Sender is the delivery interface consumed by the notification pipeline.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer sends HTML mail through a single SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New builds a Mailer.  An empty host returns a disabled mailer that logs
// instead of sending, which keeps local development working without SMTP
// credentials.
func New(host string, port int, user, pass, from string) *Mailer {
	m := &Mailer{from: from}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, user, pass)
	}
	return m
}

// Send delivers one message.  Errors are returned so the consumer can nack
// and retry; the disabled mailer only logs.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m.dialer == nil {
		log.Printf("mailer: smtp disabled, would send %q to %s", subject, to)
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
