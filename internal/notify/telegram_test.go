package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramSend(t *testing.T) {
	logger := zerolog.Nop()
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, &logger)

	err := n.Send(context.Background(), "123456", "Appointment Reminder", "See you tomorrow")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(123456), msg.ChatID)
	assert.Equal(t, "Appointment Reminder\n\nSee you tomorrow", msg.Text)
}

func TestTelegramSendBadAddress(t *testing.T) {
	logger := zerolog.Nop()
	n := NewTelegramNotifierWithSender(&fakeSender{}, &logger)

	err := n.Send(context.Background(), "anna@clinic.test", "subj", "body")
	assert.Error(t, err)
}

func TestTelegramSendFailure(t *testing.T) {
	logger := zerolog.Nop()
	n := NewTelegramNotifierWithSender(&fakeSender{err: errors.New("blocked by user")}, &logger)

	err := n.Send(context.Background(), "123456", "subj", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram send failed")
}
