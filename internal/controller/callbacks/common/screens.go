package common

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/render"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
	"github.com/go-telegram/bot/models"
)

// Photo готовая к отправке картинка
type Photo struct {
	Filename string
	Data     []byte
	Caption  string
	Keyboard *models.InlineKeyboardMarkup
}

// BuildWeekScreen таблица недели с кнопками листания
func BuildWeekScreen(ctx context.Context, schedules *service.ScheduleService, session state.Session, date time.Time, weekPrefix, noop string) (*Photo, error) {
	t, err := schedules.WeekTable(ctx, session.ScheduleID, date)
	if err != nil {
		return nil, err
	}

	data, err := render.TableImage(t, formatting.FormatCell)
	if err != nil {
		return nil, fmt.Errorf("render week: %w", err)
	}

	return &Photo{
		Filename: fmt.Sprintf("week_%s.png", t.WeekStart.Format("2006_01_02")),
		Data:     data,
		Caption:  "🗓 " + t.Name,
		Keyboard: keyboard.WeekPagination(weekPrefix, noop, t.WeekStart),
	}, nil
}

// BuildFullScreen таблица всего семестра
func BuildFullScreen(ctx context.Context, schedules *service.ScheduleService, session state.Session) (*Photo, error) {
	t, err := schedules.FullTable(ctx, session.ScheduleID)
	if err != nil {
		return nil, err
	}

	data, err := render.TableImage(t, formatting.FormatCell)
	if err != nil {
		return nil, fmt.Errorf("render table: %w", err)
	}

	pairs := countPairs(t)
	return &Photo{
		Filename: "schedule.png",
		Data:     data,
		Caption:  fmt.Sprintf("📋 %s: %d %s в расписании", t.Name, pairs, formatting.PluralizePairs(pairs)),
	}, nil
}

func countPairs(t *table.Table) int {
	count := 0
	for _, dow := range model.DaysOfWeek {
		count += len(t.Day(dow).Pairs())
	}
	return count
}
