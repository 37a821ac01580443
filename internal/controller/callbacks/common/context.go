package common

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx      context.Context
	Bot      *bot.Bot
	Callback *models.CallbackQuery
	Message  *models.Message
	ChatID   int64
	Logger   *zap.Logger
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, logger *zap.Logger) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:      ctx,
		Bot:      b,
		Callback: callback,
		Message:  msg,
		ChatID:   chatID,
		Logger:   logger.With(zap.Int64("chat_id", chatID), zap.String("data", callback.Data)),
	}
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// Fail логирует ошибку и показывает пользователю понятный текст
func (hc *HandlerContext) Fail(err error, operation string) {
	hc.Logger.Error("Callback operation failed",
		zap.String("operation", operation),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// EditMessage редактирует текст сообщения с кнопками
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// "message is not modified" не настоящая ошибка
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// EditPhoto заменяет картинку в сообщении с callback
func (hc *HandlerContext) EditPhoto(photo *Photo) error {
	if hc.Message == nil {
		return ErrNoMessage
	}
	err := EditPhoto(hc.Ctx, hc.Bot, hc.ChatID, hc.Message.ID, photo)
	if IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// IsMessageNotModifiedError Telegram отвечает так на редактирование без изменений
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
