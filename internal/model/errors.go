package model

import (
	"errors"
	"fmt"
)

// Ошибки доменной модели расписания
var (
	ErrDateParse     = errors.New("invalid date")
	ErrTimeParse     = errors.New("invalid time")
	ErrDayOfWeek     = errors.New("invalid day of week")
	ErrFrequency     = errors.New("invalid frequency")
	ErrDateIntersect = errors.New("dates intersect")
	ErrDateEmpty     = errors.New("pair has no dates")
	ErrPairIntersect = errors.New("pairs intersect")
	ErrUnknownTag    = errors.New("unknown tag")
)

// FrequencyError сообщает, что длина диапазона не кратна периоду
type FrequencyError struct {
	Date      string
	Frequency Frequency
}

func (e *FrequencyError) Error() string {
	return fmt.Sprintf("invalid frequency: %s, %s", e.Date, e.Frequency.Tag())
}

func (e *FrequencyError) Unwrap() error {
	return ErrFrequency
}

// DateIntersectError сообщает о пересечении двух дат в одной модели
type DateIntersectError struct {
	First  DateItem
	Second DateItem
}

func (e *DateIntersectError) Error() string {
	return fmt.Sprintf("dates intersect: %s and %s", e.First, e.Second)
}

func (e *DateIntersectError) Unwrap() error {
	return ErrDateIntersect
}

// PairIntersectError сообщает о конфликте двух пар в расписании
type PairIntersectError struct {
	First  *Pair
	Second *Pair
}

func (e *PairIntersectError) Error() string {
	return fmt.Sprintf("there can't be two pairs at the same time: '%s' and '%s'", e.First, e.Second)
}

func (e *PairIntersectError) Unwrap() error {
	return ErrPairIntersect
}
