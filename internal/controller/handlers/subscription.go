package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleSubscribe обрабатывает команду /subscribe - ежедневная рассылка пар на завтра
func (h *Handlers) HandleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	if _, err := h.subscriptionService.Subscribe(ctx, chatID, session.ScheduleID, session.Subgroup); err != nil {
		h.sendError(ctx, b, chatID, err, "subscribe")
		return
	}

	h.sendHTML(ctx, b, chatID, fmt.Sprintf(
		"🔔 Подписка оформлена: <b>%s</b>, %s\n\n"+
			"Каждый вечер пришлю пары на завтра. Отключить: /unsubscribe",
		html.EscapeString(session.ScheduleName),
		formatting.SubgroupLabel(session.Subgroup),
	), nil)
}

// HandleUnsubscribe обрабатывает команду /unsubscribe
func (h *Handlers) HandleUnsubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	removed, err := h.subscriptionService.Unsubscribe(ctx, chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "unsubscribe")
		return
	}

	if !removed {
		h.sendMessage(ctx, b, chatID, "ℹ️ Подписки не было. Оформить: /subscribe")
		return
	}
	h.sendMessage(ctx, b, chatID, "🔕 Рассылка отключена")
}
