package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"medivault/internal/config"

	"github.com/rs/zerolog"
)

// SMTPNotifier delivers messages as plain-text email. There is deliberately
// no retry here: callers own the failure policy.
type SMTPNotifier struct {
	cfg     config.SMTPConfig
	timeout time.Duration
	logger  *zerolog.Logger

	// sendMail is swappable in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(cfg config.SMTPConfig, timeout time.Duration, logger *zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:      cfg,
		timeout:  timeout,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, address, subject, body string) error {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	msg := BuildMessage(n.cfg.From, address, subject, body)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- n.sendMail(addr, auth, n.cfg.From, []string{address}, msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("smtp send timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
	}

	n.logger.Debug().Str("to", address).Str("subject", subject).Msg("email sent")
	return nil
}

// BuildMessage assembles an RFC 5322 plain-text message.
func BuildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
