package handler

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"flipscan/internal/transport/bot/view"
	"flipscan/internal/worker"
	"flipscan/pkg/contextx"
	"flipscan/pkg/urlx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// OnMessage treats any non-command message as a scan request: extract the
// first URL, enforce the free-scan cap, enqueue the analysis and ack
// immediately so long polling is never blocked by slow backends.
func (h *Handler) OnMessage(ctx *th.Context, msg telego.Message) error {
	targetURL, ok := urlx.First(msg.Text)
	if !ok {
		return h.send(ctx, msg.Chat.ID, view.NoURLMessage)
	}

	userID := userIDOf(msg)

	isPro, err := h.store.IsPro(ctx, userID)
	if err != nil {
		logger(ctx).Error("pro lookup failed", "user", userID, "error", err)
	}

	if !isPro {
		scans, err := h.store.IncrScans(ctx, userID)
		if err != nil {
			logger(ctx).Error("scan counter failed", "user", userID, "error", err)
			return h.send(ctx, msg.Chat.ID, view.GenericError)
		}

		if scans > h.freeScanLimit {
			return h.send(ctx, msg.Chat.ID, view.ScanLimitMessage)
		}
	}

	if err := h.enqueuer.EnqueueAnalyze(ctx, worker.AnalyzePayload{
		URL:    targetURL,
		ChatID: msg.Chat.ID,
		UserID: userID,
	}); err != nil {
		logger(ctx).Error("enqueue analyze failed", "url", targetURL, "error", err)
		return h.send(ctx, msg.Chat.ID, view.GenericError)
	}

	return h.send(ctx, msg.Chat.ID, view.AnalyzingMessage)
}
