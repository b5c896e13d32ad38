package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikoksr/notify/service/telegram"
	"github.com/oclaw/supportreq/notify"
	"github.com/oclaw/supportreq/types"
)

// sender is the part of the telegram transport used here.
type sender interface {
	Send(ctx context.Context, subject, message string) error
}

type telegramNotifier struct {
	transport sender
}

func NewTelegramNotifier(
	token string,
	chatID int64,
) (notify.Notifier, error) {

	token = strings.TrimSpace(token)
	tgTransport, err := telegram.New(token)
	if err != nil {
		return nil, err
	}
	tgTransport.SetParseMode(telegram.ModeMarkdown)
	tgTransport.AddReceivers(chatID)

	return &telegramNotifier{
		transport: tgTransport,
	}, nil
}

// legacy Markdown entities telegram parses in message bodies
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

func formatMessage(data *types.Notification) string {
	icon := "✅"
	if data.Variant == types.VariantError {
		icon = "⚠️"
	}
	return fmt.Sprintf(`
%s *%s*
%s
- record: *%s*
`,
		icon,
		markdownEscaper.Replace(data.Title),
		markdownEscaper.Replace(data.Message),
		markdownEscaper.Replace(string(data.RecordID)),
	)
}

func (tgn *telegramNotifier) Notify(ctx context.Context, data *types.Notification) error {
	return tgn.transport.Send(ctx, "supportreq update", formatMessage(data))
}
