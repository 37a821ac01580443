package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

const (
	productName = "stankin_schedule"
	untilLayout = "20060102T150405Z"
)

var byDay = [...]string{"MO", "TU", "WE", "TH", "FR", "SA"}

// Export строит календарь iCalendar: одно событие на каждый элемент даты пары.
// Диапазоны превращаются в еженедельные повторения с интервалом 1 или 2.
func Export(schedule *model.Schedule, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now()

	cal := ics.NewCalendarFor(productName)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(schedule.Info.Name)
	cal.SetXWRCalDesc("Расписание " + schedule.Info.Name)
	cal.SetXWRTimezone(loc.String())

	for _, pair := range schedule.Pairs() {
		for _, item := range pair.Date.Items() {
			if err := addEvent(cal, pair, item, loc, now); err != nil {
				return "", fmt.Errorf("export pair %q: %w", pair.Title, err)
			}
		}
	}

	return cal.Serialize(), nil
}

func addEvent(cal *ics.Calendar, pair *model.Pair, item model.DateItem, loc *time.Location, stamp time.Time) error {
	start, end := pair.Time.At(item.Start(), loc)

	event := cal.AddEvent(uuid.NewString() + "@" + productName)
	event.SetDtStampTime(stamp)
	event.SetSummary(pair.Title)
	event.SetDescription(pair.Lecturer)
	event.SetLocation(pair.Classroom)
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSequence(0)
	event.SetStatus(ics.ObjectStatusConfirmed)
	event.SetTimeTransparency(ics.TransparencyOpaque)

	if item.Frequency() == model.Once {
		return nil
	}
	rule, err := recurrenceRule(item, loc)
	if err != nil {
		return err
	}
	event.AddRrule(rule)
	return nil
}

// recurrenceRule правило повторения для диапазона дат
func recurrenceRule(item model.DateItem, loc *time.Location) (string, error) {
	var interval int
	switch item.Frequency() {
	case model.Every:
		interval = 1
	case model.Throughout:
		interval = 2
	default:
		return "", fmt.Errorf("%w: %s", model.ErrFrequency, item.Frequency())
	}

	last := item.End()
	until := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc)

	return fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s;INTERVAL=%d;BYDAY=%s",
		until.UTC().Format(untilLayout), interval, byDay[item.DayOfWeek()]), nil
}
