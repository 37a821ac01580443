package handlers

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSchedules обрабатывает команду /schedules - список расписаний
func (h *Handlers) HandleSchedules(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	infos, err := h.scheduleService.List(ctx)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "list schedules")
		return
	}

	var selectedID int64
	if session, ok := h.stateManager.GetSession(chatID); ok {
		selectedID = session.ScheduleID
	}

	h.sendHTML(ctx, b, chatID,
		formatting.FormatScheduleList(infos, selectedID),
		keyboard.ScheduleList(callbacks.UseSchedule, infos, selectedID),
	)
}

// HandleUse обрабатывает команду /use <название>
func (h *Handlers) HandleUse(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	name := commandArgs(update.Message.Text)
	if name == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите название расписания: /use ИДБ-23-01\n\nСписок расписаний: /schedules")
		return
	}

	info, err := h.scheduleService.GetByName(ctx, name)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "get schedule by name")
		return
	}

	session := state.Session{ScheduleID: info.ID, ScheduleName: info.Name, Subgroup: model.SubgroupCommon}
	if previous, ok := h.stateManager.GetSession(chatID); ok {
		session.Subgroup = previous.Subgroup
	}
	h.selectSession(ctx, chatID, session)

	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("✅ Выбрано расписание <b>%s</b>\n\nВыберите подгруппу:", html.EscapeString(info.Name)),
		keyboard.SubgroupChoice(callbacks.SetSubgroup, session.Subgroup),
	)
}

// HandleSubgroup обрабатывает команду /subgroup [А|Б|все]
func (h *Handlers) HandleSubgroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	arg := commandArgs(update.Message.Text)
	if arg == "" {
		h.sendHTML(ctx, b, chatID,
			fmt.Sprintf("👥 Сейчас: %s\n\nВыберите подгруппу:", formatting.SubgroupLabel(session.Subgroup)),
			keyboard.SubgroupChoice(callbacks.SetSubgroup, session.Subgroup),
		)
		return
	}

	subgroup, err := parseSubgroupArg(arg)
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Подгруппа указывается как А, Б или все")
		return
	}

	session.Subgroup = subgroup
	h.selectSession(ctx, chatID, session)
	h.sendMessage(ctx, b, chatID, "✅ Теперь показываю: "+formatting.SubgroupLabel(subgroup))
}

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, h.scheduleService.Today(time.Now()))
}

// HandleTomorrow обрабатывает команду /tomorrow
func (h *Handlers) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, h.scheduleService.Today(time.Now()).AddDate(0, 0, 1))
}

// HandleDate обрабатывает команду /date <дд.мм.гггг>
func (h *Handlers) HandleDate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	arg := commandArgs(update.Message.Text)
	if arg == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите дату: /date 09.09.2024")
		return
	}
	date, err := parseDateArg(arg, time.Time{})
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Неверный формат даты. Используйте дд.мм.гггг")
		return
	}
	h.showDay(ctx, b, chatID, date)
}

func (h *Handlers) showDay(ctx context.Context, b *bot.Bot, chatID int64, date time.Time) {
	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	pairs, err := h.scheduleService.PairsForDate(ctx, session.ScheduleID, date, session.Subgroup)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "pairs for date")
		return
	}

	h.sendHTML(ctx, b, chatID, formatting.FormatDay(session.ScheduleName, session.Subgroup, date, pairs), nil)
}

// HandleWeek обрабатывает команду /week [дд.мм.гггг] - таблица недели картинкой
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	date, err := parseDateArg(commandArgs(update.Message.Text), h.scheduleService.Today(time.Now()))
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ Неверный формат даты. Используйте дд.мм.гггг")
		return
	}

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	photo, err := common.BuildWeekScreen(ctx, h.scheduleService, session, date, callbacks.ShowWeek, callbacks.Noop)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "build week")
		return
	}
	if err := common.SendPhoto(ctx, b, chatID, photo); err != nil {
		h.sendError(ctx, b, chatID, err, "send week photo")
	}
}

// HandleTable обрабатывает команду /table - таблица всего семестра
func (h *Handlers) HandleTable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	photo, err := common.BuildFullScreen(ctx, h.scheduleService, session)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "build table")
		return
	}
	if err := common.SendPhoto(ctx, b, chatID, photo); err != nil {
		h.sendError(ctx, b, chatID, err, "send table photo")
	}
}

// HandleICal обрабатывает команду /ical - экспорт в календарь
func (h *Handlers) HandleICal(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	calendar, err := h.scheduleService.ExportICal(ctx, session.ScheduleID)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "export ical")
		return
	}

	h.sendFile(ctx, b, chatID, session.ScheduleName+".ics", "📆 Импортируйте файл в календарь", []byte(calendar))
}

// HandleCSV обрабатывает команду /csv - экспорт таблицы
func (h *Handlers) HandleCSV(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.scheduleService.ExportCSV(ctx, session.ScheduleID, &buf, formatting.FormatCell); err != nil {
		h.sendError(ctx, b, chatID, err, "export csv")
		return
	}

	h.sendFile(ctx, b, chatID, session.ScheduleName+".csv", "📊 Таблица расписания", buf.Bytes())
}

// HandleJSON обрабатывает команду /json - расписание в формате импорта
func (h *Handlers) HandleJSON(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.requireSession(ctx, b, chatID)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.scheduleService.ExportJSON(ctx, session.ScheduleID, &buf); err != nil {
		h.sendError(ctx, b, chatID, err, "export json")
		return
	}

	h.sendFile(ctx, b, chatID, session.ScheduleName+".json", "💾 Файл можно загрузить обратно через /import", buf.Bytes())
}

// selectSession запоминает выбор и переносит его в подписку
func (h *Handlers) selectSession(ctx context.Context, chatID int64, session state.Session) {
	h.stateManager.SetSession(chatID, session)
	if err := common.SyncSubscription(ctx, h.subscriptionService, chatID, session); err != nil {
		h.logger.Warn("Failed to sync subscription",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) sendFile(ctx context.Context, b *bot.Bot, chatID int64, filename, caption string, data []byte) {
	if err := common.SendDocument(ctx, b, chatID, filename, caption, data); err != nil {
		h.sendError(ctx, b, chatID, err, "send document")
	}
}
