package service

import (
	"context"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

// ScheduleStore хранилище расписаний и пар
type ScheduleStore interface {
	Create(ctx context.Context, info *model.ScheduleInfo) error
	Import(ctx context.Context, info *model.ScheduleInfo, pairs []*model.Pair) error
	GetByName(ctx context.Context, name string) (*model.ScheduleInfo, error)
	GetByID(ctx context.Context, id int64) (*model.ScheduleInfo, error)
	List(ctx context.Context) ([]*model.ScheduleInfo, error)
	Load(ctx context.Context, id int64) (*model.Schedule, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddPair(ctx context.Context, scheduleID int64, pair *model.Pair) error
	UpdatePair(ctx context.Context, pair *model.Pair) (bool, error)
	DeletePair(ctx context.Context, scheduleID, pairID int64) (bool, error)
	ReplacePairs(ctx context.Context, scheduleID int64, pairs []*model.Pair) error
}

// SubscriptionStore хранилище подписок на рассылку
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub *model.Subscription) error
	Get(ctx context.Context, chatID int64) (*model.Subscription, error)
	Delete(ctx context.Context, chatID int64) (bool, error)
	ListAll(ctx context.Context) ([]*model.Subscription, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}
