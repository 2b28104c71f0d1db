package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"flipscan/internal/transport/bot/view"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnHelp(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, view.HelpMessage)
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	userID := userIDOf(msg)

	scans, err := h.store.Scans(ctx, userID)
	if err != nil {
		logger(ctx).Error("read scan count", "user", userID, "error", err)
		return h.send(ctx, msg.Chat.ID, view.GenericError)
	}

	plan := "free"

	if isPro, err := h.store.IsPro(ctx, userID); err == nil && isPro {
		plan = "pro ⭐"
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.StatusMessage, scans, plan))
}

func (h *Handler) OnPro(ctx *th.Context, msg telego.Message) error {
	userID := userIDOf(msg)

	if isPro, err := h.store.IsPro(ctx, userID); err == nil && isPro {
		return h.send(ctx, msg.Chat.ID, view.ProAlreadyMessage)
	}

	checkoutURL, err := h.checkout.CreateCharge(ctx, userID)
	if err != nil {
		logger(ctx).Error("create charge failed", "user", userID, "error", err)
		return h.send(ctx, msg.Chat.ID, view.ProUnavailableMessage)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.ProCheckoutMessage, checkoutURL))
}

// OnGrant lets the admin hand out pro access manually.
// Usage: /grant 1217838677
func (h *Handler) OnGrant(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)
	if len(args) < 2 {
		return h.send(ctx, msg.Chat.ID, view.GrantUsage)
	}

	userID := args[1]

	if err := h.store.GrantPro(ctx, userID); err != nil {
		logger(ctx).Error("grant pro failed", "user", userID, "error", err)
		return h.send(ctx, msg.Chat.ID, view.GenericError)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.GrantDone, userID))
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err
}

func userIDOf(msg telego.Message) string {
	if msg.From == nil {
		return fmt.Sprintf("chat:%d", msg.Chat.ID)
	}

	return fmt.Sprintf("%d", msg.From.ID)
}
