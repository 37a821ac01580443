package controller

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/handlers"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	subscriptionService *service.SubscriptionService,
	adminIDs []int64,
	logger *zap.Logger,
) *BotController {
	// Выбор расписания и диалоги общие для команд и кнопок
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		userService,
		scheduleService,
		subscriptionService,
		stateManager,
		adminIDs,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		scheduleService,
		subscriptionService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Выбор расписания
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedules", bot.MatchTypeExact, c.handlers.HandleSchedules)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/use", bot.MatchTypePrefix, c.handlers.HandleUse)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/subgroup", bot.MatchTypePrefix, c.handlers.HandleSubgroup)

	// Просмотр
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypeExact, c.handlers.HandleTomorrow)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/date", bot.MatchTypePrefix, c.handlers.HandleDate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/table", bot.MatchTypeExact, c.handlers.HandleTable)

	// Экспорт
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ical", bot.MatchTypeExact, c.handlers.HandleICal)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/csv", bot.MatchTypeExact, c.handlers.HandleCSV)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/json", bot.MatchTypeExact, c.handlers.HandleJSON)

	// Управление и рассылка
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/import", bot.MatchTypePrefix, c.handlers.HandleImport)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/rename", bot.MatchTypePrefix, c.handlers.HandleRename)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/delete", bot.MatchTypePrefix, c.handlers.HandleDelete)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/new", bot.MatchTypePrefix, c.handlers.HandleNew)

	// Редактирование пар
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pairs", bot.MatchTypeExact, c.handlers.HandlePairs)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addpair", bot.MatchTypePrefix, c.handlers.HandleAddPair)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/editpair", bot.MatchTypePrefix, c.handlers.HandleEditPair)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/removepair", bot.MatchTypePrefix, c.handlers.HandleRemovePair)

	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/subscribe", bot.MatchTypeExact, c.handlers.HandleSubscribe)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unsubscribe", bot.MatchTypeExact, c.handlers.HandleUnsubscribe)

	// Файлы расписаний
	c.bot.RegisterHandlerMatchFunc(handlers.IsScheduleDocument, c.handlers.HandleDocument)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "schedules", Description: "🗂 Список расписаний"},
		{Command: "subgroup", Description: "👥 Выбрать подгруппу"},
		{Command: "today", Description: "📅 Пары на сегодня"},
		{Command: "tomorrow", Description: "📆 Пары на завтра"},
		{Command: "date", Description: "🔎 Пары на дату"},
		{Command: "week", Description: "🗓 Таблица недели"},
		{Command: "table", Description: "📋 Таблица семестра"},
		{Command: "ical", Description: "📤 Экспорт в календарь"},
		{Command: "csv", Description: "📊 Экспорт таблицы в CSV"},
		{Command: "json", Description: "💾 Скачать JSON расписания"},
		{Command: "import", Description: "📥 Загрузить расписание"},
		{Command: "subscribe", Description: "🔔 Рассылка на завтра"},
		{Command: "unsubscribe", Description: "🔕 Отключить рассылку"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Notify отправляет сообщение рассылки в чат
func (c *BotController) Notify(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
