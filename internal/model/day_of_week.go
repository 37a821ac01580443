package model

import (
	"fmt"
	"time"
)

// DayOfWeek учебный день недели. Воскресенье не бывает учебным днём.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysOfWeek все учебные дни по порядку
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var dayOfWeekNames = [...]string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

// DayOfWeekOf определяет день недели по дате
func DayOfWeekOf(date time.Time) (DayOfWeek, error) {
	if date.Weekday() == time.Sunday {
		return 0, fmt.Errorf("%w: %s", ErrDayOfWeek, date.Format(DatePattern))
	}
	return DayOfWeek(date.Weekday() - time.Monday), nil
}

// Weekday возвращает соответствующий time.Weekday
func (d DayOfWeek) Weekday() time.Weekday {
	return time.Weekday(d) + time.Monday
}

// Valid проверяет, что значение входит в диапазон Monday..Saturday
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Saturday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayOfWeekNames[d]
}
