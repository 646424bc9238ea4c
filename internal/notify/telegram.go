package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// telegramSender is the subset of the bot API the notifier needs.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers messages through a Telegram bot. The address is
// the recipient's numeric chat id.
type TelegramNotifier struct {
	bot    telegramSender
	logger *zerolog.Logger
}

func NewTelegramNotifier(token string, debug bool, logger *zerolog.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = debug
	return &TelegramNotifier{bot: bot, logger: logger}, nil
}

// NewTelegramNotifierWithSender is used in tests.
func NewTelegramNotifierWithSender(sender telegramSender, logger *zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: sender, logger: logger}
}

func (n *TelegramNotifier) Send(ctx context.Context, address, subject, body string) error {
	chatID, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram address must be a chat id, got %q: %w", address, err)
	}

	msg := tgbotapi.NewMessage(chatID, subject+"\n\n"+body)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}

	n.logger.Debug().Int64("chat_id", chatID).Str("subject", subject).Msg("telegram notification sent")
	return nil
}
