package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"flipscan/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnHelp, th.CommandEqual("help"))
	bh.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	bh.HandleMessage(h.OnPro, th.CommandEqual("pro"))

	// Scoped to the command so regular messages fall through to the
	// URL handler below instead of dying in the admin filter.
	adminGroup := bh.Group(th.CommandEqual("grant"))
	adminGroup.Use(middleware.AdminOnly(adminID))
	adminGroup.HandleMessage(h.OnGrant, th.AnyMessage())

	// Everything else is treated as a listing URL.
	bh.HandleMessage(h.OnMessage, th.AnyMessage())
}
