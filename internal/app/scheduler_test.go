package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
)

var msk = time.FixedZone("MSK", 3*60*60)

const digestJSON = `[
  {"title": "Математика", "type": "Lecture", "subgroup": "Common",
   "time": {"start": "8:30", "end": "10:10"},
   "dates": [{"frequency": "every", "date": "2024-09-02/2024-09-30"}]},
  {"title": "Физика", "type": "Seminar", "subgroup": "A",
   "time": {"start": "10:20", "end": "12:00"},
   "dates": [{"frequency": "every", "date": "2024-09-02/2024-09-30"}]}
]`

type fakeLoader struct {
	schedules map[int64]*model.Schedule
}

func (f *fakeLoader) Get(_ context.Context, id int64) (*model.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, service.ErrScheduleNotFound
	}
	return schedule, nil
}

type fakeTargets struct {
	groups []service.DigestGroup
	err    error
}

func (f *fakeTargets) DigestTargets(context.Context) ([]service.DigestGroup, error) {
	return f.groups, f.err
}

type recordingNotifier struct {
	sent   map[int64]string
	failOn int64
}

func (n *recordingNotifier) Notify(_ context.Context, chatID int64, text string) error {
	if chatID == n.failOn {
		return errors.New("chat not found")
	}
	n.sent[chatID] = text
	return nil
}

func plainDigest(name string, date time.Time, pairs []*model.Pair) string {
	titles := make([]string, len(pairs))
	for i, p := range pairs {
		titles[i] = p.Title
	}
	return fmt.Sprintf("%s %s: %s", name, date.Format("02.01"), strings.Join(titles, ", "))
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2024, time.September, 8, 10, 0, 0, 0, msk),
			hour: 20,
			want: time.Date(2024, time.September, 8, 20, 0, 0, 0, msk),
		},
		{
			name: "exactly at hour moves to tomorrow",
			now:  time.Date(2024, time.September, 8, 20, 0, 0, 0, msk),
			hour: 20,
			want: time.Date(2024, time.September, 9, 20, 0, 0, 0, msk),
		},
		{
			name: "already passed",
			now:  time.Date(2024, time.September, 8, 21, 15, 0, 0, msk),
			hour: 20,
			want: time.Date(2024, time.September, 9, 20, 0, 0, 0, msk),
		},
		{
			name: "utc input converted to location",
			now:  time.Date(2024, time.September, 8, 22, 0, 0, 0, time.UTC),
			hour: 7,
			want: time.Date(2024, time.September, 9, 7, 0, 0, 0, msk),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRun(tt.now, tt.hour, msk)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestScheduler_SendDigest(t *testing.T) {
	schedule, err := codec.DecodeSchedule("ИДБ-23-01", strings.NewReader(digestJSON))
	require.NoError(t, err)

	loader := &fakeLoader{schedules: map[int64]*model.Schedule{1: schedule}}
	targets := &fakeTargets{groups: []service.DigestGroup{
		{ScheduleID: 1, Subscriptions: []*model.Subscription{
			{ChatID: 10, ScheduleID: 1, Subgroup: model.SubgroupA},
			{ChatID: 11, ScheduleID: 1, Subgroup: model.SubgroupB},
			{ChatID: 12, ScheduleID: 1, Subgroup: model.SubgroupCommon},
		}},
		{ScheduleID: 2, Subscriptions: []*model.Subscription{
			{ChatID: 20, ScheduleID: 2, Subgroup: model.SubgroupA},
		}},
	}}
	notifier := &recordingNotifier{sent: make(map[int64]string), failOn: 12}

	s := NewScheduler(loader, targets, notifier, plainDigest, msk, 20, zap.NewNop())

	// воскресенье вечером: рассылка на понедельник
	sent := s.SendDigest(context.Background(), time.Date(2024, time.September, 8, 20, 0, 0, 0, msk))
	assert.Equal(t, 2, sent)
	assert.Equal(t, map[int64]string{
		10: "ИДБ-23-01 09.09: Математика, Физика",
		11: "ИДБ-23-01 09.09: Математика",
	}, notifier.sent)
}

func TestScheduler_SendDigest_NoPairs(t *testing.T) {
	schedule, err := codec.DecodeSchedule("ИДБ-23-01", strings.NewReader(digestJSON))
	require.NoError(t, err)

	loader := &fakeLoader{schedules: map[int64]*model.Schedule{1: schedule}}
	targets := &fakeTargets{groups: []service.DigestGroup{
		{ScheduleID: 1, Subscriptions: []*model.Subscription{{ChatID: 10, ScheduleID: 1}}},
	}}
	notifier := &recordingNotifier{sent: make(map[int64]string)}
	s := NewScheduler(loader, targets, notifier, plainDigest, msk, 20, zap.NewNop())

	// суббота вечером: в воскресенье пар нет
	assert.Zero(t, s.SendDigest(context.Background(), time.Date(2024, time.September, 7, 20, 0, 0, 0, msk)))
	assert.Empty(t, notifier.sent)

	targets.err = errors.New("db down")
	assert.Zero(t, s.SendDigest(context.Background(), time.Date(2024, time.September, 8, 20, 0, 0, 0, msk)))
}

func TestScheduler_StopTwice(t *testing.T) {
	s := NewScheduler(&fakeLoader{}, &fakeTargets{}, &recordingNotifier{}, plainDigest, msk, 20, zap.NewNop())
	s.Start(context.Background())

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}
