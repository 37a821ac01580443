package formatting

func plural(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSchedules возвращает правильное склонение слова "расписание"
func PluralizeSchedules(count int) string {
	return plural(count, "расписание", "расписания", "расписаний")
}

// PluralizePairs возвращает правильное склонение слова "пара"
func PluralizePairs(count int) string {
	return plural(count, "пара", "пары", "пар")
}
