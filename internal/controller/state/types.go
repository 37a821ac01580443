package state

import "github.com/Freeeeeet/stankin_schedule/internal/model"

// UserState представляет текущее состояние чата в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Ожидаем JSON файл расписания после /import
	StateAwaitingImport UserState = "awaiting_import"
)

// Ключи временных данных диалога
const (
	DataImportName = "import_name"
)

// Session выбранное в чате расписание и подгруппа
type Session struct {
	ScheduleID   int64
	ScheduleName string
	Subgroup     model.Subgroup
}

// UserData хранит состояние диалога и выбор пользователя
type UserData struct {
	State   UserState
	Data    map[string]interface{} // Временные данные для текущего диалога
	Session *Session
}
