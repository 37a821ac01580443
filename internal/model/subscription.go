package model

import "time"

// Subscription подписка чата на ежедневную рассылку расписания
type Subscription struct {
	ChatID     int64     `json:"chat_id"`
	ScheduleID int64     `json:"schedule_id"`
	Subgroup   Subgroup  `json:"subgroup"`
	CreatedAt  time.Time `json:"created_at"`
}
