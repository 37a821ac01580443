package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"go.uber.org/zap"
)

// DigestGroup подписчики одного расписания
type DigestGroup struct {
	ScheduleID    int64
	Subscriptions []*model.Subscription
}

type SubscriptionService struct {
	subscriptionRepo SubscriptionStore
	scheduleRepo     ScheduleStore
	logger           *zap.Logger
}

func NewSubscriptionService(subscriptionRepo SubscriptionStore, scheduleRepo ScheduleStore, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		scheduleRepo:     scheduleRepo,
		logger:           logger,
	}
}

// Subscribe подписывает чат на ежедневную рассылку расписания
func (s *SubscriptionService) Subscribe(ctx context.Context, chatID, scheduleID int64, subgroup model.Subgroup) (*model.Subscription, error) {
	info, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if info == nil {
		return nil, ErrScheduleNotFound
	}

	sub := &model.Subscription{
		ChatID:     chatID,
		ScheduleID: scheduleID,
		Subgroup:   subgroup,
	}
	if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	s.logger.Info("Chat subscribed",
		zap.Int64("chat_id", chatID),
		zap.Int64("schedule_id", scheduleID),
		zap.String("subgroup", subgroup.Tag()))

	return sub, nil
}

// Unsubscribe возвращает false, если подписки не было
func (s *SubscriptionService) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	ok, err := s.subscriptionRepo.Delete(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("unsubscribe: %w", err)
	}
	if ok {
		s.logger.Info("Chat unsubscribed", zap.Int64("chat_id", chatID))
	}
	return ok, nil
}

// Get подписка чата или nil
func (s *SubscriptionService) Get(ctx context.Context, chatID int64) (*model.Subscription, error) {
	sub, err := s.subscriptionRepo.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

// DigestTargets группирует подписки по расписаниям, чтобы каждое
// расписание загружалось один раз за рассылку
func (s *SubscriptionService) DigestTargets(ctx context.Context) ([]DigestGroup, error) {
	subs, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	var groups []DigestGroup
	index := make(map[int64]int)
	for _, sub := range subs {
		i, ok := index[sub.ScheduleID]
		if !ok {
			i = len(groups)
			index[sub.ScheduleID] = i
			groups = append(groups, DigestGroup{ScheduleID: sub.ScheduleID})
		}
		groups[i].Subscriptions = append(groups[i].Subscriptions, sub)
	}
	return groups, nil
}
