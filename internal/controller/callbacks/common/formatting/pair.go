package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

// TypeName название типа занятия
func TypeName(t model.Type) string {
	switch t {
	case model.Lecture:
		return "Лекция"
	case model.Seminar:
		return "Семинар"
	case model.Laboratory:
		return "Лабораторные занятия"
	default:
		return ""
	}
}

// SubgroupName "(А)", "(Б)" или пустая строка для всей группы
func SubgroupName(s model.Subgroup) string {
	switch s {
	case model.SubgroupA:
		return "(А)"
	case model.SubgroupB:
		return "(Б)"
	default:
		return ""
	}
}

// SubgroupLabel подгруппа для сообщений о настройках
func SubgroupLabel(s model.Subgroup) string {
	if name := SubgroupName(s); name != "" {
		return "подгруппа " + name
	}
	return "вся группа"
}

// FrequencyShort к.н. каждую неделю, ч.н. через неделю
func FrequencyShort(f model.Frequency) string {
	switch f {
	case model.Every:
		return "к.н."
	case model.Throughout:
		return "ч.н."
	default:
		return ""
	}
}

// FormatDates даты пары вида [02.09, 09.09-30.09 к.н.]
func FormatDates(date *model.DateModel) string {
	parts := make([]string, 0, date.Len())
	for _, item := range date.Items() {
		switch it := item.(type) {
		case *model.DateSingle:
			parts = append(parts, it.Format(dayMonthLayout))
		case *model.DateRange:
			parts = append(parts, it.Format(dayMonthLayout, "-")+" "+FrequencyShort(it.Frequency()))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatPair строка пары: название, преподаватель, тип, подгруппа и даты
func FormatPair(pair *model.Pair) string {
	var sb strings.Builder
	sb.WriteString(pair.Title)
	sb.WriteString(". ")
	sb.WriteString(pair.Lecturer)
	sb.WriteString(". ")
	sb.WriteString(TypeName(pair.Type))
	sb.WriteString(". ")
	if name := SubgroupName(pair.Subgroup); name != "" {
		sb.WriteString(name)
		sb.WriteString(". ")
	}
	sb.WriteString(FormatDates(pair.Date))
	return sb.String()
}

// FormatCell текст ячейки таблицы. Подходит как table.FormatFunc.
func FormatCell(pairs []*model.Pair) string {
	lines := make([]string, len(pairs))
	for i, pair := range pairs {
		lines[i] = FormatPair(pair)
		if pair.Classroom != "" {
			lines[i] += " " + pair.Classroom
		}
	}
	return strings.Join(lines, "\n")
}

// MessageLimit запас до лимита Telegram в 4096 символов
const MessageLimit = 4000

// FormatPairList пары расписания с id для команд редактирования.
// Длинный список делится на несколько сообщений по MessageLimit.
func FormatPairList(scheduleName string, pairs []*model.Pair) []string {
	header := fmt.Sprintf("🗂 <b>%s</b>: %d %s\n", html.EscapeString(scheduleName), len(pairs), PluralizePairs(len(pairs)))
	if len(pairs) == 0 {
		return []string{header + "\nДобавьте пару: /addpair &lt;json&gt;"}
	}

	var (
		messages []string
		sb       strings.Builder
	)
	sb.WriteString(header)
	for _, pair := range pairs {
		line := fmt.Sprintf("\n<code>#%d</code> %s %s %s",
			pair.Info.ID, weekdayOf(pair), pair.Time.String(), html.EscapeString(FormatPair(pair)))
		if sb.Len()+len(line) > MessageLimit {
			messages = append(messages, sb.String())
			sb.Reset()
		}
		sb.WriteString(line)
	}
	return append(messages, sb.String())
}

func weekdayOf(pair *model.Pair) string {
	dow, err := pair.DayOfWeek()
	if err != nil {
		return "?"
	}
	return GetWeekdayShort(dow.Weekday())
}
