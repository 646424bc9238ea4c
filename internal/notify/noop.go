package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// NoopNotifier logs instead of delivering. Used when notify.transport is
// "none" (local development).
type NoopNotifier struct {
	logger *zerolog.Logger
}

func NewNoopNotifier(logger *zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) Send(ctx context.Context, address, subject, body string) error {
	n.logger.Info().Str("to", address).Str("subject", subject).Msg("notification suppressed (noop transport)")
	return nil
}
