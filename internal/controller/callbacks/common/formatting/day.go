package formatting

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

var numberEmoji = [...]string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣"}

// FormatDay сообщение с парами на дату в HTML разметке
func FormatDay(scheduleName string, subgroup model.Subgroup, date time.Time, pairs []*model.Pair) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📅 <b>%s</b>\n", FormatLongDate(date))
	fmt.Fprintf(&sb, "🗂 %s, %s\n\n", html.EscapeString(scheduleName), SubgroupLabel(subgroup))

	if len(pairs) == 0 {
		sb.WriteString("🎉 Пар нет")
		return sb.String()
	}

	for i, pair := range pairs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(formatPairEntry(pair))
	}
	fmt.Fprintf(&sb, "\n\nВсего: %d %s", len(pairs), PluralizePairs(len(pairs)))

	return sb.String()
}

func formatPairEntry(pair *model.Pair) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s <b>%s</b> %s", numberEmoji[pair.Time.Number()], pair.Time.String(), html.EscapeString(pair.Title))
	if name := SubgroupName(pair.Subgroup); name != "" {
		sb.WriteString(" " + name)
	}
	sb.WriteString("\n")

	details := []string{TypeName(pair.Type)}
	if pair.Lecturer != "" {
		details = append(details, "👤 "+html.EscapeString(pair.Lecturer))
	}
	if pair.Classroom != "" {
		details = append(details, "🚪 "+html.EscapeString(pair.Classroom))
	}
	sb.WriteString("    " + strings.Join(details, " · "))

	if pair.Link != "" {
		fmt.Fprintf(&sb, "\n    🔗 <a href=\"%s\">ссылка</a>", html.EscapeString(pair.Link))
	}
	return sb.String()
}

// Digest текст ежедневной рассылки на завтра
func Digest(scheduleName string, date time.Time, pairs []*model.Pair) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🔔 Завтра, <b>%s</b>\n", FormatLongDate(date))
	fmt.Fprintf(&sb, "🗂 %s: %d %s\n\n", html.EscapeString(scheduleName), len(pairs), PluralizePairs(len(pairs)))
	for i, pair := range pairs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(formatPairEntry(pair))
	}
	return sb.String()
}

// FormatScheduleList список расписаний для /schedules
func FormatScheduleList(infos []*model.ScheduleInfo, selectedID int64) string {
	if len(infos) == 0 {
		return "📭 Пока нет ни одного расписания.\n\nЗагрузите JSON командой /import"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗂 Доступно %d %s:\n\n", len(infos), PluralizeSchedules(len(infos)))
	for _, info := range infos {
		marker := "▫️"
		if info.ID == selectedID {
			marker = "✅"
		}
		fmt.Fprintf(&sb, "%s %s (обновлено %s)\n", marker, html.EscapeString(info.Name), FormatDate(info.LastUpdate))
	}
	sb.WriteString("\nВыберите расписание кнопкой или командой /use &lt;название&gt;")
	return sb.String()
}
