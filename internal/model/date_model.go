package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateModel набор дат проведения занятия.
// Все элементы относятся к одному дню недели и попарно не пересекаются.
type DateModel struct {
	dates     []DateItem
	dayOfWeek DayOfWeek
	hasDay    bool
}

// NewDateModel создаёт модель и добавляет в неё элементы по очереди
func NewDateModel(items ...DateItem) (*DateModel, error) {
	m := &DateModel{}
	for _, item := range items {
		if err := m.Add(item); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add добавляет элемент даты
func (m *DateModel) Add(item DateItem) error {
	if err := m.PossibleChange(nil, item); err != nil {
		return err
	}
	m.insert(item)
	return nil
}

// Replace заменяет old на item. При ошибке модель не меняется.
func (m *DateModel) Replace(old, item DateItem) error {
	if err := m.PossibleChange(old, item); err != nil {
		return err
	}
	m.Remove(old)
	m.insert(item)
	return nil
}

// PossibleChange проверяет, можно ли заменить old на item (old == nil для добавления).
// День недели может смениться только при замене единственного элемента.
func (m *DateModel) PossibleChange(old, item DateItem) error {
	replacingOnly := old != nil && len(m.dates) == 1 && m.dates[0].Equal(old)
	if !replacingOnly && m.hasDay && m.dayOfWeek != item.DayOfWeek() {
		return fmt.Errorf("%w: %s and %s", ErrDayOfWeek, item.DayOfWeek(), m.dayOfWeek)
	}

	for _, date := range m.dates {
		if old != nil && date.Equal(old) {
			continue
		}
		if date.Intersect(item) {
			return &DateIntersectError{First: date, Second: item}
		}
	}
	return nil
}

func (m *DateModel) insert(item DateItem) {
	i := sort.Search(len(m.dates), func(i int) bool {
		return compareDateItems(m.dates[i], item) >= 0
	})
	m.dates = append(m.dates, nil)
	copy(m.dates[i+1:], m.dates[i:])
	m.dates[i] = item

	m.dayOfWeek = item.DayOfWeek()
	m.hasDay = true
}

// Remove удаляет элемент, равный item. Возвращает false, если такого нет.
func (m *DateModel) Remove(item DateItem) bool {
	if item == nil {
		return false
	}
	for i, date := range m.dates {
		if date.Equal(item) {
			m.RemoveAt(i)
			return true
		}
	}
	return false
}

// RemoveAt удаляет элемент по индексу и возвращает его
func (m *DateModel) RemoveAt(i int) DateItem {
	item := m.dates[i]
	m.dates = append(m.dates[:i], m.dates[i+1:]...)
	if len(m.dates) == 0 {
		m.hasDay = false
	}
	return item
}

// Get возвращает элемент по индексу
func (m *DateModel) Get(i int) DateItem {
	return m.dates[i]
}

// Len количество элементов
func (m *DateModel) Len() int {
	return len(m.dates)
}

// IsEmpty проверяет, пуст ли набор
func (m *DateModel) IsEmpty() bool {
	return len(m.dates) == 0
}

// Items возвращает копию списка элементов в порядке хранения
func (m *DateModel) Items() []DateItem {
	items := make([]DateItem, len(m.dates))
	copy(items, m.dates)
	return items
}

// DayOfWeek день недели набора. false, если набор пуст.
func (m *DateModel) DayOfWeek() (DayOfWeek, bool) {
	return m.dayOfWeek, m.hasDay
}

// StartDate самая ранняя дата набора
func (m *DateModel) StartDate() (time.Time, bool) {
	if len(m.dates) == 0 {
		return time.Time{}, false
	}
	return m.dates[0].Start(), true
}

// EndDate самая поздняя дата набора
func (m *DateModel) EndDate() (time.Time, bool) {
	if len(m.dates) == 0 {
		return time.Time{}, false
	}
	end := m.dates[0].End()
	for _, date := range m.dates[1:] {
		if date.End().After(end) {
			end = date.End()
		}
	}
	return end, true
}

// Intersect проверяет пересечение с элементом даты
func (m *DateModel) Intersect(item DateItem) bool {
	for _, date := range m.dates {
		if date.Intersect(item) {
			return true
		}
	}
	return false
}

// IntersectModel проверяет пересечение хотя бы одной пары элементов двух наборов
func (m *DateModel) IntersectModel(other *DateModel) bool {
	for _, date := range other.dates {
		if m.Intersect(date) {
			return true
		}
	}
	return false
}

// Contains проверяет, попадает ли конкретная дата в набор
func (m *DateModel) Contains(date time.Time) bool {
	for _, item := range m.dates {
		if item.Contains(date) {
			return true
		}
	}
	return false
}

// Clone глубокая копия набора
func (m *DateModel) Clone() *DateModel {
	clone := &DateModel{
		dates:     make([]DateItem, len(m.dates)),
		dayOfWeek: m.dayOfWeek,
		hasDay:    m.hasDay,
	}
	for i, date := range m.dates {
		clone.dates[i] = date.Clone()
	}
	return clone
}

// Equal структурное равенство наборов
func (m *DateModel) Equal(other *DateModel) bool {
	if other == nil || len(m.dates) != len(other.dates) {
		return false
	}
	for i := range m.dates {
		if !m.dates[i].Equal(other.dates[i]) {
			return false
		}
	}
	return true
}

func (m *DateModel) String() string {
	parts := make([]string, len(m.dates))
	for i, date := range m.dates {
		parts[i] = date.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
