package model

import "fmt"

// Frequency периодичность занятий
type Frequency int

const (
	Once Frequency = iota
	Every
	Throughout
)

var frequencyTags = [...]string{"once", "every", "throughout"}
var frequencyPeriods = [...]int{1, 7, 14}

// ParseFrequency получает периодичность по тегу
func ParseFrequency(tag string) (Frequency, error) {
	for i, t := range frequencyTags {
		if t == tag {
			return Frequency(i), nil
		}
	}
	return 0, fmt.Errorf("%w: frequency %q", ErrUnknownTag, tag)
}

// Valid проверяет, что значение входит в диапазон Once..Throughout
func (f Frequency) Valid() bool {
	return f >= Once && f <= Throughout
}

// Period шаг между повторениями в днях, 0 для неизвестной периодичности
func (f Frequency) Period() int {
	if !f.Valid() {
		return 0
	}
	return frequencyPeriods[f]
}

// Tag строковое представление (используется в JSON)
func (f Frequency) Tag() string {
	if !f.Valid() {
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
	return frequencyTags[f]
}

func (f Frequency) String() string {
	return f.Tag()
}
