package common

import (
	"context"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
)

// ResolveSession выбор чата из памяти, а после перезапуска из подписки
func ResolveSession(
	ctx context.Context,
	sm *state.Manager,
	schedules *service.ScheduleService,
	subscriptions *service.SubscriptionService,
	chatID int64,
) (state.Session, error) {
	if session, ok := sm.GetSession(chatID); ok {
		return session, nil
	}

	sub, err := subscriptions.Get(ctx, chatID)
	if err != nil {
		return state.Session{}, err
	}
	if sub == nil {
		return state.Session{}, ErrNoSchedule
	}

	info, err := schedules.Info(ctx, sub.ScheduleID)
	if err != nil {
		return state.Session{}, err
	}

	session := state.Session{
		ScheduleID:   info.ID,
		ScheduleName: info.Name,
		Subgroup:     sub.Subgroup,
	}
	sm.SetSession(chatID, session)
	return session, nil
}

// SyncSubscription переносит новый выбор в подписку, если чат подписан
func SyncSubscription(ctx context.Context, subscriptions *service.SubscriptionService, chatID int64, session state.Session) error {
	sub, err := subscriptions.Get(ctx, chatID)
	if err != nil || sub == nil {
		return err
	}
	if sub.ScheduleID == session.ScheduleID && sub.Subgroup == session.Subgroup {
		return nil
	}
	_, err = subscriptions.Subscribe(ctx, chatID, session.ScheduleID, session.Subgroup)
	return err
}
