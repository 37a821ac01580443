package handlers

import (
	"context"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession возвращает выбранное в чате расписание.
// Если расписание не выбрано, сам отвечает пользователю и возвращает false.
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, chatID int64) (state.Session, bool) {
	session, err := common.ResolveSession(ctx, h.stateManager, h.scheduleService, h.subscriptionService, chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "resolve session")
		return state.Session{}, false
	}
	return session, true
}

// isAdmin без настроенных администраторов менять расписания могут все
func (h *Handlers) isAdmin(userID int64) bool {
	if len(h.admins) == 0 {
		return true
	}
	_, ok := h.admins[userID]
	return ok
}

// requireAdmin проверяет права на изменение расписаний
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, message *models.Message) bool {
	var userID int64
	if message.From != nil {
		userID = message.From.ID
	}
	if h.isAdmin(userID) {
		return true
	}

	h.logger.Warn("Admin command rejected",
		zap.Int64("user_id", userID),
		zap.String("text", message.Text))
	h.sendMessage(ctx, b, message.Chat.ID, "⛔ Изменять расписания могут только администраторы бота")
	return false
}

// sendError логирует ошибку и отправляет понятный пользователю текст
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, cause error, operation string) {
	h.logger.Error("Command failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", chatID),
		zap.Error(cause),
	)
	h.sendMessage(ctx, b, chatID, common.ErrorMessage(cause))
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendHTML отправляет HTML сообщение с необязательной клавиатурой
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
