package common

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIDFromCallback извлекает ID из callback data
// Например: "use:123" -> 123
func ParseIDFromCallback(data string) (int64, error) {
	value, err := callbackValue(data)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	return id, nil
}

// ParseDateFromCallback извлекает дату: "week:2024-09-09"
func ParseDateFromCallback(data string) (time.Time, error) {
	value, err := callbackValue(data)
	if err != nil {
		return time.Time{}, err
	}
	date, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	return date, nil
}

// ParseSubgroupFromCallback извлекает подгруппу: "subgroup:A"
func ParseSubgroupFromCallback(data string) (model.Subgroup, error) {
	value, err := callbackValue(data)
	if err != nil {
		return 0, err
	}
	subgroup, err := model.ParseSubgroup(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	return subgroup, nil
}

func callbackValue(data string) (string, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidFormat, data)
	}
	return parts[1], nil
}

// SendPhoto отправляет PNG с подписью и клавиатурой
func SendPhoto(ctx context.Context, b *bot.Bot, chatID int64, photo *Photo) error {
	params := &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: photo.Filename, Data: bytes.NewReader(photo.Data)},
		Caption: photo.Caption,
	}
	if photo.Keyboard != nil {
		params.ReplyMarkup = photo.Keyboard
	}
	_, err := b.SendPhoto(ctx, params)
	return err
}

// EditPhoto заменяет картинку в сообщении, например при листании недель
func EditPhoto(ctx context.Context, b *bot.Bot, chatID int64, messageID int, photo *Photo) error {
	params := &bot.EditMessageMediaParams{
		ChatID:    chatID,
		MessageID: messageID,
		Media: &models.InputMediaPhoto{
			Media:           "attach://" + photo.Filename,
			Caption:         photo.Caption,
			MediaAttachment: bytes.NewReader(photo.Data),
		},
	}
	if photo.Keyboard != nil {
		params.ReplyMarkup = photo.Keyboard
	}
	_, err := b.EditMessageMedia(ctx, params)
	return err
}

// SendDocument отправляет файл
func SendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename, caption string, data []byte) error {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:  caption,
	})
	return err
}
