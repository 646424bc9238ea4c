package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"medivault/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSMTPNotifier(send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) *SMTPNotifier {
	logger := zerolog.Nop()
	n := NewSMTPNotifier(config.SMTPConfig{
		Host: "mail.clinic.test",
		Port: 587,
		From: "noreply@clinic.test",
	}, 5*time.Second, &logger)
	n.sendMail = send
	return n
}

func TestSMTPSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	n := newTestSMTPNotifier(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	err := n.Send(context.Background(), "anna@clinic.test", "Appointment Status Update", "Dear Anna,\n\nAll good.")
	require.NoError(t, err)

	assert.Equal(t, "mail.clinic.test:587", gotAddr)
	assert.Equal(t, "noreply@clinic.test", gotFrom)
	assert.Equal(t, []string{"anna@clinic.test"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Appointment Status Update\r\n")
	assert.True(t, strings.HasSuffix(string(gotMsg), "\r\nDear Anna,\n\nAll good."))
}

func TestSMTPSendFailure(t *testing.T) {
	n := newTestSMTPNotifier(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	err := n.Send(context.Background(), "anna@clinic.test", "subj", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send failed")
}

func TestSMTPSendTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	n := newTestSMTPNotifier(func(string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	})
	n.timeout = 50 * time.Millisecond

	err := n.Send(context.Background(), "anna@clinic.test", "subj", "body")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("from@x.test", "to@y.test", "Hello", "Body line"))

	assert.Contains(t, msg, "From: from@x.test\r\n")
	assert.Contains(t, msg, "To: to@y.test\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nBody line"))
}
