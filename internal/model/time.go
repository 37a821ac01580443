package model

import (
	"fmt"
	"strings"
	"time"
)

// Канонические времена начала и окончания пар
var (
	Starts = []string{"8:30", "10:20", "12:20", "14:10", "16:00", "18:00", "19:40", "21:20"}
	Ends   = []string{"10:10", "12:00", "14:00", "15:50", "17:40", "19:30", "21:10", "22:50"}
)

// SlotCount количество канонических пар в дне
const SlotCount = 8

// Time время проведения пары: от начала одного канонического слота
// до конца того же или более позднего слота.
type Time struct {
	start int
	end   int
}

// NewTime создаёт время по строкам "H:mm"
func NewTime(start, end string) (Time, error) {
	startIdx := slotIndex(Starts, start)
	endIdx := slotIndex(Ends, end)
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		return Time{}, fmt.Errorf("%w: %s - %s", ErrTimeParse, start, end)
	}
	return Time{start: startIdx, end: endIdx}, nil
}

// ParseTime разбирает строку вида "8:30-10:10"
func ParseTime(text string) (Time, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return Time{}, fmt.Errorf("%w: %q", ErrTimeParse, text)
	}
	return NewTime(parts[0], parts[1])
}

// MustTime как NewTime, но паникует при ошибке
func MustTime(start, end string) Time {
	t, err := NewTime(start, end)
	if err != nil {
		panic(err)
	}
	return t
}

func slotIndex(table []string, value string) int {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	normalized := fmt.Sprintf("%d:%02d", parsed.Hour(), parsed.Minute())
	for i, v := range table {
		if v == normalized {
			return i
		}
	}
	return -1
}

// minutes переводит "H:mm" в минуты от полуночи
func minutes(value string) int {
	var h, m int
	fmt.Sscanf(value, "%d:%d", &h, &m)
	return h*60 + m
}

// Start время начала "H:mm"
func (t Time) Start() string { return Starts[t.start] }

// End время окончания "H:mm"
func (t Time) End() string { return Ends[t.end] }

// Duration количество канонических пар, которые занимает занятие
func (t Time) Duration() int { return t.end - t.start + 1 }

// Number порядковый номер первой пары (с нуля)
func (t Time) Number() int { return t.start }

// StartMinutes минуты от полуночи до начала
func (t Time) StartMinutes() int { return minutes(t.Start()) }

// EndMinutes минуты от полуночи до окончания
func (t Time) EndMinutes() int { return minutes(t.End()) }

// IsIntersect проверяет пересечение интервалов как замкнутых отрезков:
// касание границ тоже считается пересечением.
func (t Time) IsIntersect(other Time) bool {
	return t.StartMinutes() <= other.EndMinutes() && other.StartMinutes() <= t.EndMinutes()
}

// At возвращает момент начала и окончания пары в заданную дату
func (t Time) At(date time.Time, loc *time.Location) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	start := day.Add(time.Duration(t.StartMinutes()) * time.Minute)
	end := day.Add(time.Duration(t.EndMinutes()) * time.Minute)
	return start, end
}

func (t Time) String() string {
	return t.Start() + "-" + t.End()
}
