package handlers

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleImport обрабатывает команду /import [название] - ожидание JSON файла
func (h *Handlers) HandleImport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.requireAdmin(ctx, b, update.Message) {
		return
	}

	name := commandArgs(update.Message.Text)
	if len([]rune(name)) > ScheduleNameMaxLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Название длиннее %d символов", ScheduleNameMaxLength))
		return
	}

	h.stateManager.SetState(chatID, state.StateAwaitingImport)
	h.stateManager.SetData(chatID, state.DataImportName, name)

	text := "📥 Отправьте .json файл расписания.\n\n" +
		"Название можно написать сообщением или в подписи к файлу, иначе возьму имя файла.\n\n" +
		"Отмена: /cancel"
	if name != "" {
		text = fmt.Sprintf("📥 Отправьте .json файл расписания <b>%s</b>.\n\nОтмена: /cancel", html.EscapeString(name))
	}
	h.sendHTML(ctx, b, chatID, text, nil)
}

// IsScheduleDocument отбирает сообщения с файлом для HandleDocument
func IsScheduleDocument(update *models.Update) bool {
	return update.Message != nil && update.Message.Document != nil
}

// HandleDocument загружает присланный JSON файл как расписание
func (h *Handlers) HandleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Document == nil {
		return
	}
	chatID := update.Message.Chat.ID
	doc := update.Message.Document

	if !isJSONDocument(doc.FileName, doc.MimeType) {
		if h.stateManager.GetState(chatID) == state.StateAwaitingImport {
			h.sendMessage(ctx, b, chatID, common.ErrorMessage(common.ErrNotJSONDocument))
		}
		return
	}
	if !h.requireAdmin(ctx, b, update.Message) {
		return
	}
	if doc.FileSize > MaxImportSize {
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(common.ErrDocumentTooLarge))
		return
	}

	name := importName(h.stateManager.GetString(chatID, state.DataImportName), update.Message.Caption, doc.FileName)

	h.logger.Info("Importing schedule",
		zap.Int64("chat_id", chatID),
		zap.String("name", name),
		zap.String("file_name", doc.FileName),
		zap.Int64("file_size", doc.FileSize),
	)

	info, err := h.importDocument(ctx, b, doc.FileID, name)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "import schedule")
		return
	}
	h.stateManager.ClearState(chatID)

	schedule, err := h.scheduleService.Get(ctx, info.ID)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "get imported schedule")
		return
	}

	count := len(schedule.Pairs())
	h.sendHTML(ctx, b, chatID, fmt.Sprintf(
		"✅ Расписание <b>%s</b> загружено: %d %s\n\nВыбрать его: /use %s",
		html.EscapeString(info.Name), count, formatting.PluralizePairs(count), html.EscapeString(info.Name),
	), nil)
}

func (h *Handlers) importDocument(ctx context.Context, b *bot.Bot, fileID, name string) (*model.ScheduleInfo, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	if file.FileSize > MaxImportSize {
		return nil, common.ErrDocumentTooLarge
	}

	body, err := h.download(ctx, b.FileDownloadLink(file))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return h.scheduleService.ImportJSON(ctx, name, io.LimitReader(body, MaxImportSize))
}

func (h *Handlers) download(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
