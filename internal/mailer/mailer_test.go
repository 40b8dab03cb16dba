package mailer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marllondevsec/store-pos/internal/money"
)

func TestMessage_Templates(t *testing.T) {
	msg := Message{
		Store: "PandaCell",
		Date:  "2025-03-10",
		Total: money.MustParse("18.75"),
	}
	assert.Equal(t, "PandaCell - Log do Caixa 2025-03-10", msg.Subject())
	assert.Equal(t,
		"PandaCell - Fechamento do Caixa\n\nData: 2025-03-10\nTotal do dia: R$ 18.75\n\nO log completo segue em anexo.\n",
		msg.Body())
}

func TestSMTPSender_MissingAddresses(t *testing.T) {
	err := SMTPSender{}.Send(Message{Server: "smtp.example.com", Port: 587}, "pwd")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSMTPSender_MissingLogFile(t *testing.T) {
	msg := Message{
		From:    "a@b.com",
		To:      "c@d.com",
		Server:  "smtp.example.com",
		Port:    587,
		LogPath: filepath.Join(t.TempDir(), "missing.txt"),
	}
	err := SMTPSender{}.Send(msg, "pwd")
	assert.Error(t, err)
	assert.False(t, IsTransport(err), "a missing attachment is not a transport failure")
}

func TestIsTransport(t *testing.T) {
	te := &TransportError{Server: "smtp.example.com:587", Err: errors.New("auth failed")}
	assert.True(t, IsTransport(te))
	assert.Contains(t, te.Error(), "smtp.example.com:587")
	assert.False(t, IsTransport(errors.New("other")))
	assert.False(t, IsTransport(nil))
}
