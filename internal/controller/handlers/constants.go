package handlers

import "time"

const (
	// Размер JSON файла расписания
	MaxImportSize = 2 << 20

	// Название расписания
	ScheduleNameMaxLength = 64

	downloadTimeout = 30 * time.Second
)
