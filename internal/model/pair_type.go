package model

import (
	"fmt"
	"strings"
)

// Type тип занятия
type Type int

const (
	Lecture Type = iota
	Seminar
	Laboratory
)

var typeTags = [...]string{"Lecture", "Seminar", "Laboratory"}

// ParseType получает тип занятия по тегу без учёта регистра
func ParseType(tag string) (Type, error) {
	for i, t := range typeTags {
		if strings.EqualFold(t, tag) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("%w: type %q", ErrUnknownTag, tag)
}

// Valid проверяет, что значение входит в диапазон Lecture..Laboratory
func (t Type) Valid() bool {
	return t >= Lecture && t <= Laboratory
}

func (t Type) Tag() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeTags[t]
}

func (t Type) String() string {
	return t.Tag()
}
