package state

import (
	"sync"
)

// Manager хранит состояния чатов в памяти
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // chatID -> UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// entry возвращает запись чата, создавая её при необходимости. Вызывать под mu.Lock.
func (sm *Manager) entry(chatID int64) *UserData {
	userData, exists := sm.states[chatID]
	if !exists {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[chatID] = userData
	}
	return userData
}

// cleanup удаляет пустую запись. Вызывать под mu.Lock.
func (sm *Manager) cleanup(chatID int64) {
	userData, exists := sm.states[chatID]
	if exists && userData.State == StateNone && len(userData.Data) == 0 && userData.Session == nil {
		delete(sm.states, chatID)
	}
}

// GetState получает текущее состояние диалога
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние диалога. Выбор расписания не меняется.
func (sm *Manager) SetState(chatID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(chatID).State = state
	sm.cleanup(chatID)
}

// GetData получает временные данные диалога
func (sm *Manager) GetData(chatID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString как GetData, но только для строк
func (sm *Manager) GetString(chatID int64, key string) string {
	value, _ := sm.GetData(chatID, key)
	s, _ := value.(string)
	return s
}

// SetData устанавливает временные данные диалога
func (sm *Manager) SetData(chatID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(chatID).Data[key] = value
}

// ClearState завершает диалог: сбрасывает состояние и временные данные
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[chatID]; exists {
		userData.State = StateNone
		userData.Data = make(map[string]interface{})
		sm.cleanup(chatID)
	}
}

// GetSession возвращает копию выбора чата
func (sm *Manager) GetSession(chatID int64) (Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[chatID]; exists && userData.Session != nil {
		return *userData.Session, true
	}
	return Session{}, false
}

// SetSession запоминает выбранное расписание и подгруппу
func (sm *Manager) SetSession(chatID int64, session Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(chatID).Session = &session
}

// ForgetSchedule сбрасывает выбор у всех чатов, где выбрано scheduleID
func (sm *Manager) ForgetSchedule(scheduleID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for chatID, userData := range sm.states {
		if userData.Session != nil && userData.Session.ScheduleID == scheduleID {
			userData.Session = nil
			sm.cleanup(chatID)
		}
	}
}

// RenameSchedule обновляет название в выборе чатов после переименования
func (sm *Manager) RenameSchedule(scheduleID int64, name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, userData := range sm.states {
		if userData.Session != nil && userData.Session.ScheduleID == scheduleID {
			userData.Session.ScheduleName = name
		}
	}
}
