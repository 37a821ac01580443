package keyboard

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot/models"
)

// callback data ограничена 64 байтами
const maxButtonsPerList = 50

// ScheduleList по кнопке на расписание: prefix + id
func ScheduleList(prefix string, infos []*model.ScheduleInfo, selectedID int64) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for i, info := range infos {
		if i == maxButtonsPerList {
			break
		}
		text := info.Name
		if info.ID == selectedID {
			text = "✅ " + text
		}
		b.Row(Button(text, fmt.Sprintf("%s%d", prefix, info.ID)))
	}
	return b.Build()
}

// SubgroupChoice выбор подгруппы: prefix + тег
func SubgroupChoice(prefix string, current model.Subgroup) *models.InlineKeyboardMarkup {
	label := func(s model.Subgroup, text string) string {
		if s == current {
			return "✅ " + text
		}
		return text
	}

	return NewBuilder().
		Row(
			Button(label(model.SubgroupA, "Подгруппа А"), prefix+model.SubgroupA.Tag()),
			Button(label(model.SubgroupB, "Подгруппа Б"), prefix+model.SubgroupB.Tag()),
		).
		Row(Button(label(model.SubgroupCommon, "Вся группа"), prefix+model.SubgroupCommon.Tag())).
		Build()
}

// WeekPagination переход по неделям: prefix + дата понедельника.
// Кнопка с датами недели отправляет noop.
func WeekPagination(prefix, noop string, weekStart time.Time) *models.InlineKeyboardMarkup {
	prev := weekStart.AddDate(0, 0, -7)
	next := weekStart.AddDate(0, 0, 7)
	sunday := weekStart.AddDate(0, 0, 6)

	return NewBuilder().
		Row(
			Button("◀️", prefix+prev.Format(model.DatePattern)),
			Button(fmt.Sprintf("📅 %s-%s", weekStart.Format("02.01"), sunday.Format("02.01")), noop),
			Button("▶️", prefix+next.Format(model.DatePattern)),
		).
		Build()
}
