package service

import "errors"

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrPairNotFound      = errors.New("pair not found")
	ErrScheduleNameEmpty = errors.New("schedule name is empty")
	ErrScheduleExists    = errors.New("schedule with this name already exists")
)
