package model

import (
	"fmt"
	"strings"
	"time"
)

// PairInfo служебная информация о паре из хранилища
type PairInfo struct {
	ScheduleID int64 `json:"schedule_id"`
	ID         int64 `json:"id"`
}

// Pair одно занятие расписания
type Pair struct {
	Title     string
	Lecturer  string
	Classroom string
	Type      Type
	Subgroup  Subgroup
	Time      Time
	Date      *DateModel
	Link      string
	Info      PairInfo
}

// NewPair создаёт пару. Набор дат не может быть пустым.
func NewPair(title, lecturer, classroom string, typ Type, subgroup Subgroup, t Time, date *DateModel, link string) (*Pair, error) {
	if date == nil || date.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrDateEmpty, title)
	}
	return &Pair{
		Title:     title,
		Lecturer:  lecturer,
		Classroom: classroom,
		Type:      typ,
		Subgroup:  subgroup,
		Time:      t,
		Date:      date,
		Link:      link,
	}, nil
}

// IsIntersect пары пересекаются, если совпадают время, даты и подгруппы
func (p *Pair) IsIntersect(other *Pair) bool {
	return p.Time.IsIntersect(other.Time) &&
		p.Date.IntersectModel(other.Date) &&
		p.Subgroup.IsIntersect(other.Subgroup)
}

// IsCurrently показывать ли пару студенту указанной подгруппы
func (p *Pair) IsCurrently(subgroup Subgroup) bool {
	return p.Subgroup == subgroup || p.Subgroup == SubgroupCommon || subgroup == SubgroupCommon
}

// Compare порядок пар внутри дня: по времени начала, затем по подгруппе
func (p *Pair) Compare(other *Pair) int {
	if p.Time.Number() != other.Time.Number() {
		return p.Time.Number() - other.Time.Number()
	}
	return int(p.Subgroup) - int(other.Subgroup)
}

// DayOfWeek день недели, в который проходит пара
func (p *Pair) DayOfWeek() (DayOfWeek, error) {
	dow, ok := p.Date.DayOfWeek()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrDateEmpty, p.Title)
	}
	return dow, nil
}

// HasDate проходит ли пара в указанную дату
func (p *Pair) HasDate(date time.Time) bool {
	return p.Date.Contains(date)
}

// Equal сравнивает содержимое пар без учёта Info
func (p *Pair) Equal(other *Pair) bool {
	if other == nil {
		return false
	}
	return p.Title == other.Title &&
		p.Lecturer == other.Lecturer &&
		p.Classroom == other.Classroom &&
		p.Type == other.Type &&
		p.Subgroup == other.Subgroup &&
		p.Time == other.Time &&
		p.Link == other.Link &&
		p.Date.Equal(other.Date)
}

// Clone глубокая копия пары
func (p *Pair) Clone() *Pair {
	clone := *p
	clone.Date = p.Date.Clone()
	return &clone
}

func (p *Pair) String() string {
	parts := []string{p.Title, p.Lecturer, p.Classroom, p.Type.Tag(), p.Subgroup.Tag(), p.Time.String(), p.Date.String()}
	return strings.Join(parts, ". ")
}
