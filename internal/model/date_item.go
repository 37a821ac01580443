package model

import (
	"fmt"
	"strings"
	"time"
)

// Форматы дат в JSON расписания
const (
	DatePattern       = "2006-01-02"
	DatePatternLegacy = "2006.01.02"

	// DateSeparator разделяет начало и конец диапазона в JSON
	DateSeparator = "/"
)

var dateLayouts = []string{DatePattern, DatePatternLegacy}

// DateItem элемент даты занятия: одиночная дата (*DateSingle) или
// периодический диапазон (*DateRange).
type DateItem interface {
	DayOfWeek() DayOfWeek
	Frequency() Frequency

	// Start и End границы элемента (для одиночной даты совпадают)
	Start() time.Time
	End() time.Time

	Intersect(item DateItem) bool
	IsBefore(item DateItem) bool
	Contains(date time.Time) bool
	Occurrences() []time.Time

	Clone() DateItem
	Equal(item DateItem) bool
	String() string

	dateItem()
}

// NewDate создаёт календарную дату без времени
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate отбрасывает время и зону, оставляя календарную дату
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате yyyy-MM-dd или yyyy.MM.dd
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, text)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// compareDateItems задаёт порядок элементов внутри DateModel
func compareDateItems(a, b DateItem) int {
	switch {
	case a.Start().Before(b.Start()):
		return -1
	case a.Start().After(b.Start()):
		return 1
	case a.End().Before(b.End()):
		return -1
	case a.End().After(b.End()):
		return 1
	case a.Frequency() < b.Frequency():
		return -1
	case a.Frequency() > b.Frequency():
		return 1
	}
	return 0
}

// DateSingle одиночная дата занятия
type DateSingle struct {
	date      time.Time
	dayOfWeek DayOfWeek
}

// NewDateSingle создаёт одиночную дату. Воскресенье недопустимо.
func NewDateSingle(date time.Time) (*DateSingle, error) {
	date = TruncateDate(date)
	dow, err := DayOfWeekOf(date)
	if err != nil {
		return nil, err
	}
	return &DateSingle{date: date, dayOfWeek: dow}, nil
}

// ParseDateSingle разбирает одиночную дату из строки
func ParseDateSingle(text string) (*DateSingle, error) {
	date, err := ParseDate(text)
	if err != nil {
		return nil, err
	}
	return NewDateSingle(date)
}

func (d *DateSingle) dateItem() {}

// Date дата занятия
func (d *DateSingle) Date() time.Time { return d.date }

func (d *DateSingle) DayOfWeek() DayOfWeek { return d.dayOfWeek }
func (d *DateSingle) Frequency() Frequency { return Once }
func (d *DateSingle) Start() time.Time     { return d.date }
func (d *DateSingle) End() time.Time       { return d.date }

func (d *DateSingle) Intersect(item DateItem) bool {
	switch other := item.(type) {
	case *DateSingle:
		return d.date.Equal(other.date)
	case *DateRange:
		return other.Contains(d.date)
	}
	panic(fmt.Sprintf("invalid intersect object: %T", item))
}

func (d *DateSingle) IsBefore(item DateItem) bool {
	switch other := item.(type) {
	case *DateSingle:
		return d.date.Before(other.date)
	case *DateRange:
		return d.date.Before(other.start) && d.date.Before(other.end)
	}
	panic(fmt.Sprintf("invalid compare object: %T", item))
}

func (d *DateSingle) Contains(date time.Time) bool {
	return d.date.Equal(TruncateDate(date))
}

func (d *DateSingle) Occurrences() []time.Time {
	return []time.Time{d.date}
}

func (d *DateSingle) Clone() DateItem {
	return &DateSingle{date: d.date, dayOfWeek: d.dayOfWeek}
}

func (d *DateSingle) Equal(item DateItem) bool {
	other, ok := item.(*DateSingle)
	return ok && d.date.Equal(other.date)
}

func (d *DateSingle) String() string {
	return d.date.Format(DatePattern)
}

// Format форматирует дату по заданному layout
func (d *DateSingle) Format(layout string) string {
	return d.date.Format(layout)
}

// DateRange диапазон дат с периодичностью, например "с 04.09 по 25.12 каждую неделю".
// Начало и конец приходятся на один день недели, длина диапазона кратна периоду.
type DateRange struct {
	start     time.Time
	end       time.Time
	frequency Frequency
	dayOfWeek DayOfWeek
}

// NewDateRange создаёт диапазон и проверяет его инварианты
func NewDateRange(start, end time.Time, frequency Frequency) (*DateRange, error) {
	start, end = TruncateDate(start), TruncateDate(end)

	startDay, err := DayOfWeekOf(start)
	if err != nil {
		return nil, err
	}
	endDay, err := DayOfWeekOf(end)
	if err != nil {
		return nil, err
	}
	if startDay != endDay {
		return nil, fmt.Errorf("%w: %s - %s", ErrDayOfWeek, start.Format(DatePattern), end.Format(DatePattern))
	}

	r := &DateRange{start: start, end: end, frequency: frequency, dayOfWeek: startDay}

	days := daysBetween(start, end)
	if frequency == Once || !frequency.Valid() || days <= 0 || days%frequency.Period() != 0 {
		return nil, &FrequencyError{Date: r.String(), Frequency: frequency}
	}

	return r, nil
}

// ParseDateRange разбирает диапазон из двух строк
func ParseDateRange(startText, endText string, frequency Frequency) (*DateRange, error) {
	start, err := ParseDate(startText)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endText)
	if err != nil {
		return nil, err
	}
	return NewDateRange(start, end, frequency)
}

// ParseDateRangeText разбирает диапазон вида "start/end" или "start-end"
func ParseDateRangeText(text string, frequency Frequency) (*DateRange, error) {
	parts := strings.Split(text, DateSeparator)
	if len(parts) != 2 {
		parts = strings.Split(text, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: range %q, frequency %s", ErrDateParse, text, frequency)
		}
	}
	return ParseDateRange(parts[0], parts[1], frequency)
}

func (r *DateRange) dateItem() {}

func (r *DateRange) DayOfWeek() DayOfWeek { return r.dayOfWeek }
func (r *DateRange) Frequency() Frequency { return r.frequency }
func (r *DateRange) Start() time.Time     { return r.start }
func (r *DateRange) End() time.Time       { return r.end }

// Contains проверяет, что дата является одним из повторений диапазона
func (r *DateRange) Contains(date time.Time) bool {
	date = TruncateDate(date)
	if date.Before(r.start) || date.After(r.end) {
		return false
	}
	return daysBetween(r.start, date)%r.frequency.Period() == 0
}

func (r *DateRange) Occurrences() []time.Time {
	dates := make([]time.Time, 0, daysBetween(r.start, r.end)/r.frequency.Period()+1)
	for it := r.start; !it.After(r.end); it = it.AddDate(0, 0, r.frequency.Period()) {
		dates = append(dates, it)
	}
	return dates
}

func (r *DateRange) Intersect(item DateItem) bool {
	switch other := item.(type) {
	case *DateSingle:
		return r.Contains(other.date)
	case *DateRange:
		if r.end.Before(other.start) || other.end.Before(r.start) {
			return false
		}
		for it := r.start; !it.After(r.end); it = it.AddDate(0, 0, r.frequency.Period()) {
			if other.Contains(it) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("invalid intersect object: %T", item))
}

func (r *DateRange) IsBefore(item DateItem) bool {
	switch other := item.(type) {
	case *DateSingle:
		return r.start.Before(other.date) && r.end.Before(other.date)
	case *DateRange:
		return r.start.Before(other.start) && r.end.Before(other.end)
	}
	panic(fmt.Sprintf("invalid compare object: %T", item))
}

func (r *DateRange) Clone() DateItem {
	return &DateRange{start: r.start, end: r.end, frequency: r.frequency, dayOfWeek: r.dayOfWeek}
}

func (r *DateRange) Equal(item DateItem) bool {
	other, ok := item.(*DateRange)
	return ok &&
		r.start.Equal(other.start) &&
		r.end.Equal(other.end) &&
		r.frequency == other.frequency
}

func (r *DateRange) String() string {
	return r.Format(DatePattern, DateSeparator)
}

// Format форматирует диапазон с заданным layout и разделителем
func (r *DateRange) Format(layout, delimiter string) string {
	return r.start.Format(layout) + delimiter + r.end.Format(layout)
}
