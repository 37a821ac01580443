package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/ical"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/repository/base"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
	"go.uber.org/zap"
)

type ScheduleService struct {
	scheduleRepo ScheduleStore
	location     *time.Location
	logger       *zap.Logger

	mu    sync.Mutex
	locks map[string]*keyedLock
}

// keyedLock мьютекс ключа и число горутин, которые его держат или ждут
type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewScheduleService(scheduleRepo ScheduleStore, location *time.Location, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		location:     location,
		logger:       logger,
		locks:        make(map[string]*keyedLock),
	}
}

// lock сериализует изменения одного расписания. Запись о ключе
// удаляется, когда его больше никто не ждёт.
func (s *ScheduleService) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyedLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// scheduleKey все изменения существующего расписания идут под этим ключом
func scheduleKey(id int64) string {
	return fmt.Sprintf("id:%d", id)
}

// nameKey защищает создание расписания с ещё не занятым именем
func nameKey(name string) string {
	return "name:" + name
}

// ImportJSON загружает расписание из JSON. Расписание с тем же именем
// заменяется целиком и сохраняет свой id. Конфликтующие пары отклоняют весь импорт.
func (s *ScheduleService) ImportJSON(ctx context.Context, name string, r io.Reader) (*model.ScheduleInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrScheduleNameEmpty
	}

	pairs, err := codec.DecodePairs(r)
	if err != nil {
		return nil, err
	}
	schedule, err := codec.BuildSchedule(model.ScheduleInfo{Name: name}, pairs)
	if err != nil {
		return nil, err
	}

	// сначала имя, потом id: обратного порядка нигде нет
	unlockName := s.lock(nameKey(name))
	defer unlockName()

	existing, err := s.scheduleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	if existing != nil {
		unlock := s.lock(scheduleKey(existing.ID))
		defer unlock()

		// пока ждали блокировку, расписание могли удалить или переименовать
		existing, err = s.scheduleRepo.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("get schedule: %w", err)
		}
		if existing != nil && existing.Name != name {
			existing = nil
		}
	}

	info := schedule.Info
	if existing != nil {
		if err := s.scheduleRepo.ReplacePairs(ctx, existing.ID, schedule.Pairs()); err != nil {
			return nil, fmt.Errorf("replace pairs: %w", err)
		}
		info = *existing
		info.LastUpdate = time.Now()
	} else if err := s.scheduleRepo.Import(ctx, &info, schedule.Pairs()); err != nil {
		return nil, fmt.Errorf("import schedule: %w", err)
	}

	s.logger.Info("Schedule imported",
		zap.Int64("schedule_id", info.ID),
		zap.String("name", info.Name),
		zap.Bool("replaced", existing != nil),
		zap.Int("pairs", schedule.Len()))

	return &info, nil
}

// Create создаёт пустое расписание, пары добавляются через AddPair
func (s *ScheduleService) Create(ctx context.Context, name string) (*model.ScheduleInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrScheduleNameEmpty
	}

	unlock := s.lock(nameKey(name))
	defer unlock()

	info := &model.ScheduleInfo{Name: name}
	if err := s.scheduleRepo.Create(ctx, info); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrScheduleExists
		}
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return info, nil
}

// Get загружает расписание целиком
func (s *ScheduleService) Get(ctx context.Context, id int64) (*model.Schedule, error) {
	schedule, err := s.scheduleRepo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	return schedule, nil
}

// Info метаданные расписания без пар
func (s *ScheduleService) Info(ctx context.Context, id int64) (*model.ScheduleInfo, error) {
	info, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if info == nil {
		return nil, ErrScheduleNotFound
	}
	return info, nil
}

// GetByName ищет расписание по точному имени
func (s *ScheduleService) GetByName(ctx context.Context, name string) (*model.ScheduleInfo, error) {
	info, err := s.scheduleRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if info == nil {
		return nil, ErrScheduleNotFound
	}
	return info, nil
}

func (s *ScheduleService) List(ctx context.Context) ([]*model.ScheduleInfo, error) {
	infos, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return infos, nil
}

// Rename меняет имя расписания. Занятое имя отсекает уникальный индекс.
func (s *ScheduleService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrScheduleNameEmpty
	}

	unlockName := s.lock(nameKey(name))
	defer unlockName()
	unlock := s.lock(scheduleKey(id))
	defer unlock()

	ok, err := s.scheduleRepo.Rename(ctx, id, name)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrScheduleExists
		}
		return fmt.Errorf("rename schedule: %w", err)
	}
	if !ok {
		return ErrScheduleNotFound
	}

	s.logger.Info("Schedule renamed", zap.Int64("schedule_id", id), zap.String("name", name))
	return nil
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	unlock := s.lock(scheduleKey(id))
	defer unlock()

	ok, err := s.scheduleRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if !ok {
		return ErrScheduleNotFound
	}

	s.logger.Info("Schedule deleted", zap.Int64("schedule_id", id))
	return nil
}

// AddPair добавляет пару, если она не пересекается с остальными
func (s *ScheduleService) AddPair(ctx context.Context, scheduleID int64, pair *model.Pair) error {
	unlock := s.lock(scheduleKey(scheduleID))
	defer unlock()

	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return err
	}
	if err := schedule.Add(pair); err != nil {
		return err
	}

	if err := s.scheduleRepo.AddPair(ctx, scheduleID, pair); err != nil {
		return fmt.Errorf("add pair: %w", err)
	}
	return nil
}

// ChangePair заменяет пару pairID на pair
func (s *ScheduleService) ChangePair(ctx context.Context, scheduleID, pairID int64, pair *model.Pair) error {
	unlock := s.lock(scheduleKey(scheduleID))
	defer unlock()

	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return err
	}
	old := findPair(schedule, pairID)
	if old == nil {
		return ErrPairNotFound
	}
	if err := schedule.ChangePair(old, pair); err != nil {
		return err
	}

	pair.Info = old.Info
	ok, err := s.scheduleRepo.UpdatePair(ctx, pair)
	if err != nil {
		return fmt.Errorf("change pair: %w", err)
	}
	if !ok {
		return ErrPairNotFound
	}
	return nil
}

func (s *ScheduleService) RemovePair(ctx context.Context, scheduleID, pairID int64) error {
	unlock := s.lock(scheduleKey(scheduleID))
	defer unlock()

	ok, err := s.scheduleRepo.DeletePair(ctx, scheduleID, pairID)
	if err != nil {
		return fmt.Errorf("remove pair: %w", err)
	}
	if !ok {
		return ErrPairNotFound
	}
	return nil
}

// PairsForDate пары на дату для подгруппы
func (s *ScheduleService) PairsForDate(ctx context.Context, scheduleID int64, date time.Time, subgroup model.Subgroup) ([]*model.Pair, error) {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return PairsFor(schedule, date, subgroup), nil
}

// WeekTable таблица недели, в которую входит date
func (s *ScheduleService) WeekTable(ctx context.Context, scheduleID int64, date time.Time) (*table.Table, error) {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return table.NewWeekly(schedule, date), nil
}

// FullTable таблица всего семестра
func (s *ScheduleService) FullTable(ctx context.Context, scheduleID int64) (*table.Table, error) {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return table.NewFull(schedule), nil
}

// ExportICal календарь расписания в часовом поясе сервиса
func (s *ScheduleService) ExportICal(ctx context.Context, scheduleID int64) (string, error) {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return "", err
	}
	return ical.Export(schedule, s.location)
}

// ExportCSV пишет ячейки полной таблицы
func (s *ScheduleService) ExportCSV(ctx context.Context, scheduleID int64, w io.Writer, format table.FormatFunc) error {
	t, err := s.FullTable(ctx, scheduleID)
	if err != nil {
		return err
	}
	return codec.WriteCSV(w, t, format)
}

// ExportJSON пишет пары в формате импорта
func (s *ScheduleService) ExportJSON(ctx context.Context, scheduleID int64, w io.Writer) error {
	schedule, err := s.Get(ctx, scheduleID)
	if err != nil {
		return err
	}
	return codec.EncodeSchedule(w, schedule)
}

// Today текущая дата в часовом поясе сервиса
func (s *ScheduleService) Today(now time.Time) time.Time {
	return model.TruncateDate(now.In(s.location))
}

// PairsFor фильтрует пары даты по подгруппе
func PairsFor(schedule *model.Schedule, date time.Time, subgroup model.Subgroup) []*model.Pair {
	var pairs []*model.Pair
	for _, pair := range schedule.PairsByDate(date) {
		if pair.IsCurrently(subgroup) {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func findPair(schedule *model.Schedule, pairID int64) *model.Pair {
	for _, pair := range schedule.Pairs() {
		if pair.Info.ID == pairID {
			return pair
		}
	}
	return nil
}
