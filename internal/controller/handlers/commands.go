package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"Расписание:\n" +
	"/schedules - Список расписаний\n" +
	"/use <название> - Выбрать расписание\n" +
	"/subgroup <А|Б|все> - Выбрать подгруппу\n\n" +
	"Просмотр:\n" +
	"/today - Пары на сегодня\n" +
	"/tomorrow - Пары на завтра\n" +
	"/date <дд.мм.гггг> - Пары на дату\n" +
	"/week [дд.мм.гггг] - Таблица недели\n" +
	"/table - Таблица всего семестра\n\n" +
	"Экспорт:\n" +
	"/ical - Календарь .ics\n" +
	"/csv - Таблица .csv\n" +
	"/json - Файл расписания .json\n\n" +
	"Управление:\n" +
	"/import [название] - Загрузить расписание из .json\n" +
	"/new <название> - Создать пустое расписание\n" +
	"/pairs - Пары выбранного расписания с id\n" +
	"/addpair <json> - Добавить пару\n" +
	"/editpair <id> <json> - Заменить пару\n" +
	"/removepair <id> - Удалить пару\n" +
	"/rename <название> - Переименовать выбранное расписание\n" +
	"/delete <название> - Удалить расписание\n" +
	"/subscribe - Присылать пары на завтра каждый вечер\n" +
	"/unsubscribe - Отключить рассылку\n" +
	"/cancel - Отменить текущую операцию"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	name := "студент"
	if from := update.Message.From; from != nil {
		user, err := h.userService.RegisterUser(ctx, model.User{
			TelegramID:   from.ID,
			Username:     from.Username,
			FirstName:    from.FirstName,
			LastName:     from.LastName,
			LanguageCode: from.LanguageCode,
		})
		if err != nil {
			h.logger.Error("Failed to register user", zap.Error(err))
			h.sendMessage(ctx, b, chatID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
			return
		}
		name = user.DisplayName()
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот с расписанием занятий МГТУ «СТАНКИН».\n\n"+
			"1. Выберите расписание группы: /schedules\n"+
			"2. Укажите подгруппу: /subgroup\n"+
			"3. Смотрите пары: /today, /tomorrow, /week\n\n"+
			"Все команды: /help",
		html.EscapeString(name),
	)
	h.sendHTML(ctx, b, chatID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(chatID) == state.StateNone {
		h.sendMessage(ctx, b, chatID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(chatID)
	h.sendMessage(ctx, b, chatID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.stateManager.GetState(chatID)

	switch currentState {
	case state.StateNone:
		return
	case state.StateAwaitingImport:
		// Текст до файла считаем названием расписания
		name := strings.TrimSpace(update.Message.Text)
		if len([]rune(name)) > ScheduleNameMaxLength {
			h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ Название длиннее %d символов", ScheduleNameMaxLength))
			return
		}
		h.stateManager.SetData(chatID, state.DataImportName, name)
		h.sendHTML(ctx, b, chatID,
			fmt.Sprintf("📝 Название: <b>%s</b>\n\nТеперь отправьте .json файл расписания.", html.EscapeString(name)), nil)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
