package mailer

import (
	"bytes"
	"testing"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSenderRequiresHost(t *testing.T) {
	_, err := NewSMTPSender(config.SMTPConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	s, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "reports@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestBuildIncludesAttachment(t *testing.T) {
	cfg := config.SMTPConfig{From: "reports@example.com", FromName: "Hotel Reports"}
	m := Build(cfg, Message{
		To:       "owner@example.com",
		Subject:  "Financial Report",
		HTMLBody: "<p>Attached.</p>",
		Attachment: &Attachment{
			Filename: "financial.csv",
			MIMEType: "text/csv",
			Data:     []byte("a,b\n1,2\n"),
		},
	})

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Financial Report")
	assert.Contains(t, raw, "To: owner@example.com")
	assert.Contains(t, raw, `filename="financial.csv"`)
	assert.Contains(t, raw, "Content-Type: text/csv")
}
