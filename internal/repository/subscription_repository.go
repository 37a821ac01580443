package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	*base.Repository
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{Repository: base.NewRepository(pool)}
}

// Upsert создаёт подписку чата или меняет расписание и подгруппу
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (chat_id, schedule_id, subgroup)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id) DO UPDATE
		SET schedule_id = EXCLUDED.schedule_id, subgroup = EXCLUDED.subgroup
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, sub.ChatID, sub.ScheduleID, sub.Subgroup.Tag()).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// Get получает подписку чата
func (r *SubscriptionRepository) Get(ctx context.Context, chatID int64) (*model.Subscription, error) {
	query := `
		SELECT chat_id, schedule_id, subgroup, created_at
		FROM subscriptions
		WHERE chat_id = $1
	`

	sub, err := scanSubscription(r.QueryRow(ctx, query, chatID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, chatID int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM subscriptions WHERE chat_id = $1`, chatID)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	return affected > 0, nil
}

// ListAll возвращает все подписки, сгруппированные по расписанию
func (r *SubscriptionRepository) ListAll(ctx context.Context) ([]*model.Subscription, error) {
	query := `
		SELECT chat_id, schedule_id, subgroup, created_at
		FROM subscriptions
		ORDER BY schedule_id, chat_id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	return subs, nil
}

func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var (
		sub         model.Subscription
		subgroupTag string
	)
	if err := row.Scan(&sub.ChatID, &sub.ScheduleID, &subgroupTag, &sub.CreatedAt); err != nil {
		return nil, err
	}

	subgroup, err := model.ParseSubgroup(subgroupTag)
	if err != nil {
		return nil, err
	}
	sub.Subgroup = subgroup
	return &sub, nil
}
