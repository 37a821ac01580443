package model

import (
	"sort"
	"time"
)

// Schedule расписание: по одному ScheduleDay на каждый учебный день недели.
// Все изменения проходят проверку конфликтов до мутации.
type Schedule struct {
	Info ScheduleInfo
	days [len(dayOfWeekNames)]*ScheduleDay
}

// NewSchedule создаёт пустое расписание
func NewSchedule(info ScheduleInfo) *Schedule {
	s := &Schedule{Info: info}
	for i := range s.days {
		s.days[i] = NewScheduleDay()
	}
	return s
}

func (s *Schedule) dayOf(pair *Pair) (*ScheduleDay, error) {
	dow, err := pair.DayOfWeek()
	if err != nil {
		return nil, err
	}
	return s.days[dow], nil
}

// Add добавляет пару в день, соответствующий её датам
func (s *Schedule) Add(pair *Pair) error {
	day, err := s.dayOf(pair)
	if err != nil {
		return err
	}
	return day.Add(pair)
}

// Remove удаляет пару. Возвращает false, если пара не найдена.
func (s *Schedule) Remove(pair *Pair) bool {
	if pair == nil {
		return false
	}
	day, err := s.dayOf(pair)
	if err != nil {
		return false
	}
	return day.Remove(pair)
}

// PossibleChangePair проверяет, можно ли заменить old на pair.
// old == nil означает добавление новой пары.
func (s *Schedule) PossibleChangePair(old, pair *Pair) error {
	day, err := s.dayOf(pair)
	if err != nil {
		return err
	}
	return day.PossibleChangePair(old, pair)
}

// ChangePair заменяет old на pair. При ошибке расписание не меняется.
func (s *Schedule) ChangePair(old, pair *Pair) error {
	if err := s.PossibleChangePair(old, pair); err != nil {
		return err
	}
	removed := s.Remove(old)
	if err := s.Add(pair); err != nil {
		if removed {
			// откат: old уже был в расписании и не конфликтовал
			_ = s.Add(old)
		}
		return err
	}
	return nil
}

// Day возвращает день расписания
func (s *Schedule) Day(dow DayOfWeek) *ScheduleDay {
	return s.days[dow]
}

// PairsByDay пары дня недели в порядке времени
func (s *Schedule) PairsByDay(dow DayOfWeek) []*Pair {
	return s.days[dow].Pairs()
}

// PairsByDate пары в конкретную дату. В воскресенье пар нет.
func (s *Schedule) PairsByDate(date time.Time) []*Pair {
	dow, err := DayOfWeekOf(date)
	if err != nil {
		return nil
	}
	return s.days[dow].PairsByDate(date)
}

// PairsByDiscipline все пары дисциплины по дням недели
func (s *Schedule) PairsByDiscipline(title string) []*Pair {
	var result []*Pair
	for _, day := range s.days {
		result = append(result, day.PairsByDiscipline(title)...)
	}
	return result
}

// Disciplines отсортированный список уникальных названий
func (s *Schedule) Disciplines() []string {
	seen := make(map[string]struct{})
	var titles []string
	for _, day := range s.days {
		for _, p := range day.pairs {
			if _, ok := seen[p.Title]; ok {
				continue
			}
			seen[p.Title] = struct{}{}
			titles = append(titles, p.Title)
		}
	}
	sort.Strings(titles)
	return titles
}

// Pairs все пары по дням недели
func (s *Schedule) Pairs() []*Pair {
	var result []*Pair
	for _, day := range s.days {
		result = append(result, day.Pairs()...)
	}
	return result
}

// Len общее количество пар
func (s *Schedule) Len() int {
	n := 0
	for _, day := range s.days {
		n += day.Len()
	}
	return n
}

func (s *Schedule) IsEmpty() bool {
	return s.Len() == 0
}

// StartDate первая дата семестра
func (s *Schedule) StartDate() (time.Time, bool) {
	var start time.Time
	found := false
	for _, day := range s.days {
		if d, ok := day.StartDate(); ok && (!found || d.Before(start)) {
			start, found = d, true
		}
	}
	return start, found
}

// EndDate последняя дата семестра
func (s *Schedule) EndDate() (time.Time, bool) {
	var end time.Time
	found := false
	for _, day := range s.days {
		if d, ok := day.EndDate(); ok && (!found || d.After(end)) {
			end, found = d, true
		}
	}
	return end, found
}

// LimitDate ограничивает дату границами семестра
func (s *Schedule) LimitDate(date time.Time) time.Time {
	date = TruncateDate(date)
	start, ok := s.StartDate()
	if !ok {
		return date
	}
	end, _ := s.EndDate()
	if date.Before(start) {
		return start
	}
	if date.After(end) {
		return end
	}
	return date
}
