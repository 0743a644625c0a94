// Package mailer sends generated reports over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"io"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned when no SMTP host/sender is configured.
var ErrNotConfigured = errors.New("smtp is not configured")

// Attachment is a file carried by a Message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Message is a single outgoing e-mail.
type Message struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment *Attachment
}

// Sender delivers messages.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends through gomail's dialer.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPSender returns a sender for cfg, or ErrNotConfigured.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, ErrNotConfigured
	}
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send builds the MIME message and dials the server.
func (s *SMTPSender) Send(msg Message) error {
	m := Build(s.cfg, msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}

// Build assembles the gomail message for msg.
func Build(cfg config.SMTPConfig, msg Message) *gomail.Message {
	m := gomail.NewMessage()
	if cfg.FromName != "" {
		m.SetAddressHeader("From", cfg.From, cfg.FromName)
	} else {
		m.SetHeader("From", cfg.From)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if a := msg.Attachment; a != nil && len(a.Data) > 0 {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.MIMEType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return m
}
