package table

import (
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

// Mode режим таблицы
type Mode int

const (
	// ModeFull все пары семестра по дням недели
	ModeFull Mode = iota
	// ModeWeekly пары конкретной недели
	ModeWeekly
)

func (m Mode) String() string {
	if m == ModeWeekly {
		return "weekly"
	}
	return "full"
}

const weekDateLayout = "02.01.2006"

// Table таблица расписания: по одному Day на каждый учебный день
type Table struct {
	Name      string
	Mode      Mode
	WeekStart time.Time

	days []*Day
}

// NewFull строит таблицу всего расписания
func NewFull(s *model.Schedule) *Table {
	t := &Table{Name: s.Info.Name, Mode: ModeFull}
	for _, dow := range model.DaysOfWeek {
		t.days = append(t.days, NewDay(s.PairsByDay(dow)))
	}
	return t
}

// NewWeekly строит таблицу недели, в которую попадает date
func NewWeekly(s *model.Schedule, date time.Time) *Table {
	monday := WeekStart(date)
	sunday := monday.AddDate(0, 0, 6)

	t := &Table{
		Name:      s.Info.Name + ". " + monday.Format(weekDateLayout) + "-" + sunday.Format(weekDateLayout),
		Mode:      ModeWeekly,
		WeekStart: monday,
	}
	for i := range model.DaysOfWeek {
		t.days = append(t.days, NewDay(s.PairsByDate(monday.AddDate(0, 0, i))))
	}
	return t
}

// WeekStart понедельник недели, содержащей date
func WeekStart(date time.Time) time.Time {
	date = model.TruncateDate(date)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// Day раскладка дня недели
func (t *Table) Day(dow model.DayOfWeek) *Day {
	return t.days[dow]
}

// LinesPerDay количество строк каждого дня
func (t *Table) LinesPerDay() []int {
	lines := make([]int, len(t.days))
	for i, d := range t.days {
		lines[i] = d.Lines()
	}
	return lines
}

// TotalLines сумма строк всех дней
func (t *Table) TotalLines() int {
	total := 0
	for _, d := range t.days {
		total += d.Lines()
	}
	return total
}
