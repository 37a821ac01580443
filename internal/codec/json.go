package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

// PairJSON пара в формате JSON расписания
type PairJSON struct {
	Title     string     `json:"title" validate:"required"`
	Lecturer  string     `json:"lecturer"`
	Classroom string     `json:"classroom"`
	Type      string     `json:"type" validate:"required"`
	Subgroup  string     `json:"subgroup" validate:"required"`
	Time      TimeJSON   `json:"time"`
	Dates     []DateJSON `json:"dates" validate:"required,min=1,dive"`
	Link      string     `json:"link"`
}

// TimeJSON время пары
type TimeJSON struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// DateJSON элемент даты: одиночная дата или диапазон "start/end"
type DateJSON struct {
	Frequency string `json:"frequency" validate:"required,oneof=once every throughout"`
	Date      string `json:"date" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodePairs читает массив пар и строит доменные модели.
// Ошибка содержит номер пары, на которой произошёл сбой.
func DecodePairs(r io.Reader) ([]*model.Pair, error) {
	var items []PairJSON
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode pairs: %w: %v", ErrMalformedJSON, err)
	}

	pairs := make([]*model.Pair, 0, len(items))
	for i := range items {
		pair, err := items[i].ToPair()
		if err != nil {
			return nil, fmt.Errorf("pair #%d: %w", i+1, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// DecodePair читает одну пару, например из команды редактирования
func DecodePair(r io.Reader) (*model.Pair, error) {
	var item PairJSON
	if err := json.NewDecoder(r).Decode(&item); err != nil {
		return nil, fmt.Errorf("decode pair: %w: %v", ErrMalformedJSON, err)
	}
	return item.ToPair()
}

// DecodeSchedule читает пары и собирает из них расписание с проверкой конфликтов
func DecodeSchedule(name string, r io.Reader) (*model.Schedule, error) {
	pairs, err := DecodePairs(r)
	if err != nil {
		return nil, err
	}
	return BuildSchedule(model.ScheduleInfo{Name: name}, pairs)
}

// BuildSchedule добавляет пары в новое расписание по одной
func BuildSchedule(info model.ScheduleInfo, pairs []*model.Pair) (*model.Schedule, error) {
	schedule := model.NewSchedule(info)
	for i, pair := range pairs {
		if err := schedule.Add(pair); err != nil {
			return nil, fmt.Errorf("pair #%d: %w", i+1, err)
		}
	}
	return schedule, nil
}

// ToPair проверяет поля и строит доменную пару
func (p *PairJSON) ToPair() (*model.Pair, error) {
	if err := validate.Struct(p); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("pair %q: %w", p.Title, validationError(validationErrs))
		}
		return nil, err
	}

	typ, err := model.ParseType(p.Type)
	if err != nil {
		return nil, err
	}
	subgroup, err := model.ParseSubgroup(p.Subgroup)
	if err != nil {
		return nil, err
	}
	tm, err := model.NewTime(p.Time.Start, p.Time.End)
	if err != nil {
		return nil, err
	}
	date, err := dateModelFromJSON(p.Dates)
	if err != nil {
		return nil, err
	}

	return model.NewPair(p.Title, p.Lecturer, p.Classroom, typ, subgroup, tm, date, p.Link)
}

// PairToJSON переводит доменную пару в JSON-представление
func PairToJSON(pair *model.Pair) PairJSON {
	return PairJSON{
		Title:     pair.Title,
		Lecturer:  pair.Lecturer,
		Classroom: pair.Classroom,
		Type:      pair.Type.Tag(),
		Subgroup:  pair.Subgroup.Tag(),
		Time:      TimeJSON{Start: pair.Time.Start(), End: pair.Time.End()},
		Dates:     datesToJSON(pair.Date),
		Link:      pair.Link,
	}
}

// EncodePairs пишет пары массивом JSON
func EncodePairs(w io.Writer, pairs []*model.Pair) error {
	items := make([]PairJSON, len(pairs))
	for i, pair := range pairs {
		items[i] = PairToJSON(pair)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode pairs: %w", err)
	}
	return nil
}

// EncodeSchedule пишет все пары расписания
func EncodeSchedule(w io.Writer, schedule *model.Schedule) error {
	return EncodePairs(w, schedule.Pairs())
}

// MarshalDates сериализует набор дат для хранения в БД
func MarshalDates(date *model.DateModel) ([]byte, error) {
	data, err := json.Marshal(datesToJSON(date))
	if err != nil {
		return nil, fmt.Errorf("marshal dates: %w", err)
	}
	return data, nil
}

// UnmarshalDates восстанавливает набор дат из БД
func UnmarshalDates(data []byte) (*model.DateModel, error) {
	var items []DateJSON
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal dates: %w", err)
	}
	return dateModelFromJSON(items)
}

func datesToJSON(date *model.DateModel) []DateJSON {
	items := make([]DateJSON, 0, date.Len())
	for _, item := range date.Items() {
		items = append(items, DateJSON{Frequency: item.Frequency().Tag(), Date: item.String()})
	}
	return items
}

func dateModelFromJSON(items []DateJSON) (*model.DateModel, error) {
	date, err := model.NewDateModel()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		dateItem, err := item.ToDateItem()
		if err != nil {
			return nil, err
		}
		if err := date.Add(dateItem); err != nil {
			return nil, err
		}
	}
	return date, nil
}

// ToDateItem строит элемент даты по частоте
func (d DateJSON) ToDateItem() (model.DateItem, error) {
	frequency, err := model.ParseFrequency(d.Frequency)
	if err != nil {
		return nil, err
	}
	if frequency == model.Once {
		single, err := model.ParseDateSingle(d.Date)
		if err != nil {
			return nil, err
		}
		return single, nil
	}
	r, err := model.ParseDateRangeText(d.Date, frequency)
	if err != nil {
		return nil, err
	}
	return r, nil
}
