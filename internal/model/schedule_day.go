package model

import (
	"sort"
	"time"
)

// ScheduleDay пары одного дня недели. Пары в дне попарно не пересекаются.
type ScheduleDay struct {
	pairs []*Pair

	// кэш границ, сбрасывается при изменении
	bounds      *[2]time.Time
	boundsEmpty bool
}

func NewScheduleDay() *ScheduleDay {
	return &ScheduleDay{}
}

// Add добавляет пару, если она не пересекается с уже существующими
func (d *ScheduleDay) Add(pair *Pair) error {
	if err := d.PossibleChangePair(nil, pair); err != nil {
		return err
	}
	d.pairs = append(d.pairs, pair)
	d.invalidate()
	return nil
}

// PossibleChangePair проверяет, можно ли заменить old на pair (old == nil для добавления)
func (d *ScheduleDay) PossibleChangePair(old, pair *Pair) error {
	for _, p := range d.pairs {
		if old != nil && (p == old || p.Equal(old)) {
			continue
		}
		if p.IsIntersect(pair) {
			return &PairIntersectError{First: p, Second: pair}
		}
	}
	return nil
}

// Remove удаляет пару. Возвращает false, если пары нет в дне.
func (d *ScheduleDay) Remove(pair *Pair) bool {
	if pair == nil {
		return false
	}
	for i, p := range d.pairs {
		if p == pair || p.Equal(pair) {
			d.pairs = append(d.pairs[:i], d.pairs[i+1:]...)
			d.invalidate()
			return true
		}
	}
	return false
}

// Pairs все пары дня в порядке времени
func (d *ScheduleDay) Pairs() []*Pair {
	return sortedPairs(d.pairs)
}

// PairsByDate пары, которые проходят в указанную дату
func (d *ScheduleDay) PairsByDate(date time.Time) []*Pair {
	var result []*Pair
	for _, p := range d.pairs {
		if p.HasDate(date) {
			result = append(result, p)
		}
	}
	return sortedPairs(result)
}

// PairsByDiscipline пары с указанным названием
func (d *ScheduleDay) PairsByDiscipline(title string) []*Pair {
	var result []*Pair
	for _, p := range d.pairs {
		if p.Title == title {
			result = append(result, p)
		}
	}
	return sortedPairs(result)
}

func (d *ScheduleDay) Len() int {
	return len(d.pairs)
}

func (d *ScheduleDay) IsEmpty() bool {
	return len(d.pairs) == 0
}

// StartDate самая ранняя дата пар дня
func (d *ScheduleDay) StartDate() (time.Time, bool) {
	d.computeBounds()
	if d.boundsEmpty {
		return time.Time{}, false
	}
	return d.bounds[0], true
}

// EndDate самая поздняя дата пар дня
func (d *ScheduleDay) EndDate() (time.Time, bool) {
	d.computeBounds()
	if d.boundsEmpty {
		return time.Time{}, false
	}
	return d.bounds[1], true
}

func (d *ScheduleDay) invalidate() {
	d.bounds = nil
}

func (d *ScheduleDay) computeBounds() {
	if d.bounds != nil {
		return
	}
	var start, end time.Time
	found := false
	for _, p := range d.pairs {
		s, ok := p.Date.StartDate()
		if !ok {
			continue
		}
		e, _ := p.Date.EndDate()
		if !found || s.Before(start) {
			start = s
		}
		if !found || e.After(end) {
			end = e
		}
		found = true
	}
	d.bounds = &[2]time.Time{start, end}
	d.boundsEmpty = !found
}

func sortedPairs(pairs []*Pair) []*Pair {
	result := make([]*Pair, len(pairs))
	copy(result, pairs)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Compare(result[j]) < 0
	})
	return result
}
