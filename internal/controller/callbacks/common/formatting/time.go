package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

const (
	dateLayout     = "02.01.2006"
	dayMonthLayout = "02.01"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate разбирает дату, введённую пользователем: 09.09.2024 или 9.9.2024
func ParseDate(text string) (time.Time, error) {
	for _, layout := range []string{dateLayout, "2.1.2006"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return model.ParseDate(text)
}

// FormatLongDate "Понедельник, 9 сентября"
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", GetWeekdayName(t.Weekday()), t.Day(), GetMonthName(t.Month()))
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetMonthName название месяца в родительном падеже
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return names[month]
}
