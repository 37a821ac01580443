package common

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage        = errors.New("no message in callback")
	ErrInvalidFormat    = errors.New("invalid callback format")
	ErrNoSchedule       = errors.New("schedule is not selected")
	ErrNotJSONDocument  = errors.New("document is not json")
	ErrDocumentTooLarge = errors.New("document is too large")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var pairErr *model.PairIntersectError
	if errors.As(err, &pairErr) {
		return fmt.Sprintf("❌ Пары пересекаются:\n• %s\n• %s", pairErr.First.Title, pairErr.Second.Title)
	}

	switch {
	case errors.Is(err, ErrNoSchedule):
		return "❌ Расписание не выбрано. Посмотрите список: /schedules"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNotJSONDocument):
		return "❌ Нужен файл расписания в формате .json"
	case errors.Is(err, ErrDocumentTooLarge):
		return "❌ Файл слишком большой"
	case errors.Is(err, service.ErrScheduleNotFound):
		return "❌ Расписание не найдено"
	case errors.Is(err, service.ErrPairNotFound):
		return "❌ Пара не найдена"
	case errors.Is(err, service.ErrScheduleNameEmpty):
		return "❌ Название расписания не может быть пустым"
	case errors.Is(err, service.ErrScheduleExists):
		return "❌ Расписание с таким названием уже есть"
	case errors.Is(err, codec.ErrMalformedJSON):
		return "❌ Не удалось разобрать JSON: проверьте скобки, кавычки и запятые"
	case errors.Is(err, codec.ErrInvalidPair):
		return "❌ Некорректная пара: " + err.Error()
	case errors.Is(err, model.ErrDateIntersect):
		return "❌ Даты пары пересекаются между собой"
	case errors.Is(err, model.ErrFrequency):
		return "❌ Диапазон дат не совпадает с периодичностью"
	case errors.Is(err, model.ErrDateEmpty):
		return "❌ У пары нет ни одной даты"
	case errors.Is(err, model.ErrDateParse), errors.Is(err, model.ErrTimeParse),
		errors.Is(err, model.ErrDayOfWeek), errors.Is(err, model.ErrUnknownTag):
		return "❌ Ошибка в данных расписания: " + err.Error()
	default:
		return "❌ Произошла ошибка"
	}
}
