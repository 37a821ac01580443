package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errStoreDown       = errors.New("store is down")
	errUniqueViolation = fmt.Errorf("rename schedule: %w", &pgconn.PgError{Code: "23505"})
)

// fakeScheduleStore хранит копии пар, как это делает БД
type fakeScheduleStore struct {
	mu       sync.Mutex
	infos    map[int64]*model.ScheduleInfo
	pairs    map[int64][]*model.Pair
	nextID   int64
	imports  int
	replaces int
	err      error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		infos: make(map[int64]*model.ScheduleInfo),
		pairs: make(map[int64][]*model.Pair),
	}
}

func (f *fakeScheduleStore) id() int64 {
	f.nextID++
	return f.nextID
}

// nameTaken вызывается под f.mu
func (f *fakeScheduleStore) nameTaken(name string, except int64) bool {
	for id, info := range f.infos {
		if info.Name == name && id != except {
			return true
		}
	}
	return false
}

func (f *fakeScheduleStore) Create(_ context.Context, info *model.ScheduleInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.nameTaken(info.Name, 0) {
		return errUniqueViolation
	}
	info.ID = f.id()
	info.LastUpdate = time.Now()
	stored := *info
	f.infos[info.ID] = &stored
	return nil
}

func (f *fakeScheduleStore) Import(_ context.Context, info *model.ScheduleInfo, pairs []*model.Pair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.imports++

	for _, existing := range f.infos {
		if existing.Name == info.Name {
			info.ID = existing.ID
		}
	}
	if info.ID == 0 {
		info.ID = f.id()
	}
	info.LastUpdate = time.Now()
	stored := *info
	f.infos[info.ID] = &stored

	f.pairs[info.ID] = nil
	for _, pair := range pairs {
		pair.Info = model.PairInfo{ScheduleID: info.ID, ID: f.id()}
		f.pairs[info.ID] = append(f.pairs[info.ID], pair.Clone())
	}
	return nil
}

func (f *fakeScheduleStore) GetByName(_ context.Context, name string) (*model.ScheduleInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, info := range f.infos {
		if info.Name == name {
			copied := *info
			return &copied, nil
		}
	}
	return nil, f.err
}

func (f *fakeScheduleStore) GetByID(_ context.Context, id int64) (*model.ScheduleInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	info, ok := f.infos[id]
	if !ok {
		return nil, nil
	}
	copied := *info
	return &copied, nil
}

func (f *fakeScheduleStore) List(_ context.Context) ([]*model.ScheduleInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var infos []*model.ScheduleInfo
	for _, info := range f.infos {
		copied := *info
		infos = append(infos, &copied)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, f.err
}

func (f *fakeScheduleStore) Load(_ context.Context, id int64) (*model.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	info, ok := f.infos[id]
	if !ok {
		return nil, nil
	}
	schedule := model.NewSchedule(*info)
	for _, pair := range f.pairs[id] {
		if err := schedule.Add(pair.Clone()); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

func (f *fakeScheduleStore) Rename(_ context.Context, id int64, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	info, ok := f.infos[id]
	if !ok {
		return false, nil
	}
	if f.nameTaken(name, id) {
		return false, errUniqueViolation
	}
	info.Name = name
	return true, nil
}

func (f *fakeScheduleStore) Delete(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.infos[id]
	delete(f.infos, id)
	delete(f.pairs, id)
	return ok, f.err
}

func (f *fakeScheduleStore) AddPair(_ context.Context, scheduleID int64, pair *model.Pair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	pair.Info = model.PairInfo{ScheduleID: scheduleID, ID: f.id()}
	f.pairs[scheduleID] = append(f.pairs[scheduleID], pair.Clone())
	return nil
}

func (f *fakeScheduleStore) UpdatePair(_ context.Context, pair *model.Pair) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	pairs := f.pairs[pair.Info.ScheduleID]
	for i, stored := range pairs {
		if stored.Info.ID == pair.Info.ID {
			pairs[i] = pair.Clone()
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleStore) DeletePair(_ context.Context, scheduleID, pairID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pairs := f.pairs[scheduleID]
	for i, stored := range pairs {
		if stored.Info.ID == pairID {
			f.pairs[scheduleID] = append(pairs[:i], pairs[i+1:]...)
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeScheduleStore) ReplacePairs(_ context.Context, scheduleID int64, pairs []*model.Pair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.replaces++
	f.pairs[scheduleID] = nil
	for _, pair := range pairs {
		pair.Info = model.PairInfo{ScheduleID: scheduleID, ID: f.id()}
		f.pairs[scheduleID] = append(f.pairs[scheduleID], pair.Clone())
	}
	return nil
}

// pairByTitle ищет сохранённую пару по названию
func (f *fakeScheduleStore) pairByTitle(scheduleID int64, title string) *model.Pair {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pair := range f.pairs[scheduleID] {
		if pair.Title == title {
			return pair
		}
	}
	return nil
}

type fakeSubscriptionStore struct {
	subs map[int64]*model.Subscription
	err  error
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[int64]*model.Subscription)}
}

func (f *fakeSubscriptionStore) Upsert(_ context.Context, sub *model.Subscription) error {
	if f.err != nil {
		return f.err
	}
	if existing, ok := f.subs[sub.ChatID]; ok {
		sub.CreatedAt = existing.CreatedAt
	} else {
		sub.CreatedAt = time.Now()
	}
	copied := *sub
	f.subs[sub.ChatID] = &copied
	return nil
}

func (f *fakeSubscriptionStore) Get(_ context.Context, chatID int64) (*model.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	sub, ok := f.subs[chatID]
	if !ok {
		return nil, nil
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeSubscriptionStore) Delete(_ context.Context, chatID int64) (bool, error) {
	_, ok := f.subs[chatID]
	delete(f.subs, chatID)
	return ok, f.err
}

func (f *fakeSubscriptionStore) ListAll(_ context.Context) ([]*model.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	var subs []*model.Subscription
	for _, sub := range f.subs {
		copied := *sub
		subs = append(subs, &copied)
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].ScheduleID != subs[j].ScheduleID {
			return subs[i].ScheduleID < subs[j].ScheduleID
		}
		return subs[i].ChatID < subs[j].ChatID
	})
	return subs, nil
}

type fakeUserStore struct {
	users   map[int64]*model.User
	updates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = int64(len(f.users) + 1)
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.TelegramID] = &copied
	return nil
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	user, ok := f.users[telegramID]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *model.User) error {
	f.updates++
	copied := *user
	f.users[user.TelegramID] = &copied
	return nil
}
