package model

import "time"

// ScheduleInfo метаданные расписания
type ScheduleInfo struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LastUpdate time.Time `json:"last_update"`
	Synced     bool      `json:"synced"`
	Position   int       `json:"position"`
}
