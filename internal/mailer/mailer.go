// Package mailer dispatches a day's ledger by email as a text/plain
// attachment.
//
// Transport failures are never fatal and never retried inline: the
// caller enqueues the log into the outbox and the operator retries
// explicitly later.
package mailer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gomail "gopkg.in/gomail.v2"

	"github.com/marllondevsec/store-pos/internal/money"
)

// sslPort is the standard implicit-TLS submission port. Any other port
// uses plaintext-then-STARTTLS.
const sslPort = 465

// ErrNotConfigured is returned when the sender or recipient address is
// missing.
var ErrNotConfigured = errors.New("email addresses not configured")

// TransportError wraps any connection, auth, or protocol failure from
// the SMTP dialog.
type TransportError struct {
	Server string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mail send via %s failed: %v", e.Server, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is a transport failure (as opposed
// to a configuration or validation problem).
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message describes one close-of-day log delivery.
type Message struct {
	Store   string
	From    string
	To      string
	Server  string
	Port    int
	Date    string // session day, YYYY-MM-DD
	Total   money.Money
	LogPath string // attached as text/plain
}

// Subject returns the fixed subject template.
func (m Message) Subject() string {
	return fmt.Sprintf("%s - Log do Caixa %s", m.Store, m.Date)
}

// Body returns the fixed body template.
func (m Message) Body() string {
	return fmt.Sprintf(
		"%s - Fechamento do Caixa\n\nData: %s\nTotal do dia: R$ %s\n\nO log completo segue em anexo.\n",
		m.Store, m.Date, m.Total)
}

// Sender delivers a composed message with a credential. Implementations
// must wrap transport problems in *TransportError.
type Sender interface {
	Send(msg Message, password string) error
}

// SMTPSender sends through a real SMTP server, choosing implicit SSL
// for port 465 and STARTTLS otherwise.
type SMTPSender struct{}

// Send implements Sender.
func (SMTPSender) Send(msg Message, password string) error {
	if msg.From == "" || msg.To == "" {
		return ErrNotConfigured
	}
	if _, err := os.Stat(msg.LogPath); err != nil {
		return fmt.Errorf("log file: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject())
	m.SetBody("text/plain", msg.Body())
	m.Attach(msg.LogPath,
		gomail.Rename(filepath.Base(msg.LogPath)),
		gomail.SetHeader(map[string][]string{"Content-Type": {"text/plain"}}),
	)

	d := gomail.NewDialer(msg.Server, msg.Port, msg.From, password)
	d.SSL = msg.Port == sslPort
	if err := d.DialAndSend(m); err != nil {
		return &TransportError{Server: fmt.Sprintf("%s:%d", msg.Server, msg.Port), Err: err}
	}
	return nil
}
