package callbacks

import (
	"fmt"
	"html"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"go.uber.org/zap"
)

// handleUseSchedule выбор расписания из списка /schedules
func (h *Handler) handleUseSchedule(hc *common.HandlerContext) {
	id, err := common.ParseIDFromCallback(hc.Callback.Data)
	if err != nil {
		hc.Fail(err, "parse schedule id")
		return
	}

	info, err := h.scheduleService.Info(hc.Ctx, id)
	if err != nil {
		hc.Fail(err, "get schedule")
		return
	}

	session := state.Session{ScheduleID: info.ID, ScheduleName: info.Name, Subgroup: model.SubgroupCommon}
	if previous, ok := h.stateManager.GetSession(hc.ChatID); ok {
		session.Subgroup = previous.Subgroup
	}
	h.stateManager.SetSession(hc.ChatID, session)

	if err := common.SyncSubscription(hc.Ctx, h.subscriptionService, hc.ChatID, session); err != nil {
		hc.Logger.Warn("Failed to sync subscription", zap.Error(err))
	}

	text := fmt.Sprintf("✅ Выбрано расписание <b>%s</b>\n\nВыберите подгруппу:", html.EscapeString(info.Name))
	if err := hc.EditMessage(text, keyboard.SubgroupChoice(SetSubgroup, session.Subgroup)); err != nil {
		hc.Logger.Error("Failed to edit message", zap.Error(err))
	}
	hc.Answer("✅ " + info.Name)
}

// handleSetSubgroup выбор подгруппы после выбора расписания
func (h *Handler) handleSetSubgroup(hc *common.HandlerContext) {
	subgroup, err := common.ParseSubgroupFromCallback(hc.Callback.Data)
	if err != nil {
		hc.Fail(err, "parse subgroup")
		return
	}

	session, err := common.ResolveSession(hc.Ctx, h.stateManager, h.scheduleService, h.subscriptionService, hc.ChatID)
	if err != nil {
		hc.Fail(err, "resolve session")
		return
	}
	session.Subgroup = subgroup
	h.stateManager.SetSession(hc.ChatID, session)

	if err := common.SyncSubscription(hc.Ctx, h.subscriptionService, hc.ChatID, session); err != nil {
		hc.Logger.Warn("Failed to sync subscription", zap.Error(err))
	}

	text := fmt.Sprintf(
		"✅ <b>%s</b>, %s\n\n"+
			"/today - пары на сегодня\n"+
			"/tomorrow - пары на завтра\n"+
			"/week - таблица недели\n"+
			"/subscribe - присылать расписание каждый вечер",
		html.EscapeString(session.ScheduleName),
		formatting.SubgroupLabel(subgroup),
	)
	if err := hc.EditMessage(text, nil); err != nil {
		hc.Logger.Error("Failed to edit message", zap.Error(err))
	}
	hc.Answer("")
}

// handleShowWeek листание таблицы по неделям
func (h *Handler) handleShowWeek(hc *common.HandlerContext) {
	date, err := common.ParseDateFromCallback(hc.Callback.Data)
	if err != nil {
		hc.Fail(err, "parse week")
		return
	}

	session, err := common.ResolveSession(hc.Ctx, h.stateManager, h.scheduleService, h.subscriptionService, hc.ChatID)
	if err != nil {
		hc.Fail(err, "resolve session")
		return
	}

	photo, err := common.BuildWeekScreen(hc.Ctx, h.scheduleService, session, date, ShowWeek, Noop)
	if err != nil {
		hc.Fail(err, "build week")
		return
	}

	if err := hc.EditPhoto(photo); err != nil {
		hc.Fail(err, "edit week photo")
		return
	}
	hc.Answer("")
}
