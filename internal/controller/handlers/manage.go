package handlers

import (
	"context"
	"fmt"
	"html"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleRename обрабатывает команду /rename <новое название> для выбранного расписания
func (h *Handlers) HandleRename(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.requireAdmin(ctx, b, update.Message) {
		return
	}

	name := commandArgs(update.Message.Text)
	if name == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите новое название: /rename ИДБ-23-11")
		return
	}
	if len([]rune(name)) > ScheduleNameMaxLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Название длиннее %d символов", ScheduleNameMaxLength))
		return
	}

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	if err := h.scheduleService.Rename(ctx, session.ScheduleID, name); err != nil {
		h.sendError(ctx, b, chatID, err, "rename schedule")
		return
	}
	h.stateManager.RenameSchedule(session.ScheduleID, name)

	h.sendHTML(ctx, b, chatID, fmt.Sprintf("✏️ <b>%s</b> теперь называется <b>%s</b>",
		html.EscapeString(session.ScheduleName), html.EscapeString(name)), nil)
}

// HandleDelete обрабатывает команду /delete <название>.
// Название нужно повторить целиком, чтобы не удалить расписание случайно.
func (h *Handlers) HandleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.requireAdmin(ctx, b, update.Message) {
		return
	}

	name := commandArgs(update.Message.Text)
	if name == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите название расписания: /delete ИДБ-23-01")
		return
	}

	info, err := h.scheduleService.GetByName(ctx, name)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "get schedule by name")
		return
	}

	if err := h.scheduleService.Delete(ctx, info.ID); err != nil {
		h.sendError(ctx, b, chatID, err, "delete schedule")
		return
	}
	// подписки удаляются каскадом, выбор в памяти сбрасываем сами
	h.stateManager.ForgetSchedule(info.ID)

	h.sendHTML(ctx, b, chatID, fmt.Sprintf("🗑 Расписание <b>%s</b> удалено", html.EscapeString(info.Name)), nil)
}
