package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"go.uber.org/zap"
)

// Notifier отправляет текст в чат
type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

// DigestFormatter текст рассылки с парами на дату
type DigestFormatter func(scheduleName string, date time.Time, pairs []*model.Pair) string

type digestSource interface {
	DigestTargets(ctx context.Context) ([]service.DigestGroup, error)
}

type scheduleLoader interface {
	Get(ctx context.Context, id int64) (*model.Schedule, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	schedules     scheduleLoader
	subscriptions digestSource
	notifier      Notifier
	format        DigestFormatter
	location      *time.Location
	hour          int
	now           func() time.Time
	logger        *zap.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewScheduler создаёт планировщик ежедневной рассылки в hour часов по location
func NewScheduler(
	schedules scheduleLoader,
	subscriptions digestSource,
	notifier Notifier,
	format DigestFormatter,
	location *time.Location,
	hour int,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		schedules:     schedules,
		subscriptions: subscriptions,
		notifier:      notifier,
		format:        format,
		location:      location,
		hour:          hour,
		now:           time.Now,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("digest_hour", s.hour))

	go s.runDigestTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

func (s *Scheduler) runDigestTask(ctx context.Context) {
	for {
		now := s.now()
		next := nextRun(now, s.hour, s.location)
		s.logger.Info("Next digest scheduled", zap.Time("at", next))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-timer.C:
			s.SendDigest(ctx, next)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

// SendDigest рассылает подписчикам пары на следующий после now день.
// Возвращает количество отправленных сообщений.
func (s *Scheduler) SendDigest(ctx context.Context, now time.Time) int {
	date := model.TruncateDate(now.In(s.location)).AddDate(0, 0, 1)

	groups, err := s.subscriptions.DigestTargets(ctx)
	if err != nil {
		s.logger.Error("Failed to load digest targets", zap.Error(err))
		return 0
	}

	sent := 0
	for _, group := range groups {
		schedule, err := s.schedules.Get(ctx, group.ScheduleID)
		if err != nil {
			s.logger.Error("Failed to load schedule for digest",
				zap.Int64("schedule_id", group.ScheduleID),
				zap.Error(err))
			continue
		}

		for _, sub := range group.Subscriptions {
			pairs := service.PairsFor(schedule, date, sub.Subgroup)
			if len(pairs) == 0 {
				continue
			}

			text := s.format(schedule.Info.Name, date, pairs)
			if err := s.notifier.Notify(ctx, sub.ChatID, text); err != nil {
				s.logger.Warn("Failed to send digest",
					zap.Int64("chat_id", sub.ChatID),
					zap.Error(err))
				continue
			}
			sent++
		}
	}

	s.logger.Info("Digest sent",
		zap.String("date", date.Format(model.DatePattern)),
		zap.Int("messages", sent))
	return sent
}

// nextRun ближайший момент hour:00 по loc строго после now
func nextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
