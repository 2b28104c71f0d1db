// Package notifier delivers analysis results back to Telegram chats.
package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"flipscan/internal/domain/entity"
)

// maxMessageLen is Telegram's hard cap on message text.
const maxMessageLen = 4096

type TelegramNotifier struct {
	bot *telego.Bot
}

func NewTelegramNotifier(bot *telego.Bot) *TelegramNotifier {
	return &TelegramNotifier{bot: bot}
}

// SendReport delivers a markdown report, truncated to the Telegram limit.
func (n *TelegramNotifier) SendReport(ctx context.Context, chatID int64, report entity.Report) error {
	text := report.Markdown
	if len([]rune(text)) > maxMessageLen {
		text = string([]rune(text)[:maxMessageLen])
	}

	msg := tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeMarkdown)

	if _, err := n.bot.SendMessage(ctx, msg); err != nil {
		// Markdown from a language model is not always balanced; retry
		// as plain text before giving up.
		plain := tu.Message(tu.ID(chatID), text)
		if _, retryErr := n.bot.SendMessage(ctx, plain); retryErr != nil {
			return fmt.Errorf("send message: %w", retryErr)
		}
	}

	return nil
}

// SendText delivers a plain text message.
func (n *TelegramNotifier) SendText(ctx context.Context, chatID int64, text string) error {
	if _, err := n.bot.SendMessage(ctx, tu.Message(tu.ID(chatID), text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
