package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const pairExample = `{"title": "Математика", "lecturer": "Иванов И.И.", "classroom": "0301", ` +
	`"type": "Lecture", "subgroup": "Common", "time": {"start": "8:30", "end": "10:10"}, ` +
	`"dates": [{"frequency": "every", "date": "2024-09-02/2024-12-23"}]}`

// adminSession права администратора и выбранное расписание
func (h *Handlers) adminSession(ctx context.Context, b *bot.Bot, message *models.Message) (state.Session, bool) {
	if !h.requireAdmin(ctx, b, message) {
		return state.Session{}, false
	}
	return h.requireSession(ctx, b, message.Chat.ID)
}

// HandleNew обрабатывает команду /new <название> - пустое расписание
func (h *Handlers) HandleNew(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.requireAdmin(ctx, b, update.Message) {
		return
	}

	name := commandArgs(update.Message.Text)
	if name == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите название: /new ИДБ-23-01")
		return
	}
	if len([]rune(name)) > ScheduleNameMaxLength {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Название длиннее %d символов", ScheduleNameMaxLength))
		return
	}

	info, err := h.scheduleService.Create(ctx, name)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "create schedule")
		return
	}
	session := state.Session{ScheduleID: info.ID, ScheduleName: info.Name, Subgroup: model.SubgroupCommon}
	if previous, ok := h.stateManager.GetSession(chatID); ok {
		session.Subgroup = previous.Subgroup
	}
	h.selectSession(ctx, chatID, session)

	h.sendHTML(ctx, b, chatID, fmt.Sprintf("🆕 Расписание <b>%s</b> создано и выбрано.\n\nДобавляйте пары: /addpair &lt;json&gt;",
		html.EscapeString(info.Name)), nil)
}

// HandlePairs обрабатывает команду /pairs - пары выбранного расписания с id
func (h *Handlers) HandlePairs(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.adminSession(ctx, b, update.Message)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.Get(ctx, session.ScheduleID)
	if err != nil {
		h.sendError(ctx, b, chatID, err, "load schedule")
		return
	}

	for _, text := range formatting.FormatPairList(session.ScheduleName, schedule.Pairs()) {
		h.sendHTML(ctx, b, chatID, text, nil)
	}
}

// HandleAddPair обрабатывает команду /addpair <json>
func (h *Handlers) HandleAddPair(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.adminSession(ctx, b, update.Message)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if args == "" {
		h.sendHTML(ctx, b, chatID, "❌ Передайте пару в JSON:\n<code>/addpair "+html.EscapeString(pairExample)+"</code>", nil)
		return
	}

	pair, err := codec.DecodePair(strings.NewReader(args))
	if err != nil {
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if err := h.scheduleService.AddPair(ctx, session.ScheduleID, pair); err != nil {
		h.sendError(ctx, b, chatID, err, "add pair")
		return
	}

	h.logger.Info("Pair added",
		zap.Int64("schedule_id", session.ScheduleID),
		zap.Int64("pair_id", pair.Info.ID),
		zap.Int64("chat_id", chatID))
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("➕ Пара <code>#%d</code> добавлена:\n%s",
		pair.Info.ID, html.EscapeString(formatting.FormatPair(pair))), nil)
}

// HandleEditPair обрабатывает команду /editpair <id> <json>
func (h *Handlers) HandleEditPair(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.adminSession(ctx, b, update.Message)
	if !ok {
		return
	}

	pairID, body, err := parsePairArgs(commandArgs(update.Message.Text))
	if err != nil || body == "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите id пары из /pairs и новую пару в JSON: /editpair 12 {...}")
		return
	}

	pair, err := codec.DecodePair(strings.NewReader(body))
	if err != nil {
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if err := h.scheduleService.ChangePair(ctx, session.ScheduleID, pairID, pair); err != nil {
		h.sendError(ctx, b, chatID, err, "change pair")
		return
	}

	h.logger.Info("Pair changed",
		zap.Int64("schedule_id", session.ScheduleID),
		zap.Int64("pair_id", pairID),
		zap.Int64("chat_id", chatID))
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("✏️ Пара <code>#%d</code> изменена:\n%s",
		pairID, html.EscapeString(formatting.FormatPair(pair))), nil)
}

// HandleRemovePair обрабатывает команду /removepair <id>
func (h *Handlers) HandleRemovePair(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	session, ok := h.adminSession(ctx, b, update.Message)
	if !ok {
		return
	}

	pairID, rest, err := parsePairArgs(commandArgs(update.Message.Text))
	if err != nil || rest != "" {
		h.sendMessage(ctx, b, chatID, "❌ Укажите id пары из /pairs: /removepair 12")
		return
	}

	if err := h.scheduleService.RemovePair(ctx, session.ScheduleID, pairID); err != nil {
		h.sendError(ctx, b, chatID, err, "remove pair")
		return
	}

	h.logger.Info("Pair removed",
		zap.Int64("schedule_id", session.ScheduleID),
		zap.Int64("pair_id", pairID),
		zap.Int64("chat_id", chatID))
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("🗑 Пара <code>#%d</code> удалена", pairID), nil)
}
