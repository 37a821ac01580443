package callbacks

import (
	"context"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обрабатывает нажатия на inline кнопки
type Handler struct {
	scheduleService     *service.ScheduleService
	subscriptionService *service.SubscriptionService
	stateManager        *state.Manager
	logger              *zap.Logger
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	scheduleService *service.ScheduleService,
	subscriptionService *service.SubscriptionService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		scheduleService:     scheduleService,
		subscriptionService: subscriptionService,
		stateManager:        stateManager,
		logger:              logger,
	}
}

// HandleCallbackQuery точка входа для bot.HandlerTypeCallbackQueryData
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h)
}
