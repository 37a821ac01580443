package handlers

import (
	"net/http"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/state"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	scheduleService     *service.ScheduleService
	subscriptionService *service.SubscriptionService
	stateManager        *state.Manager
	httpClient          *http.Client
	admins              map[int64]struct{}
	logger              *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	scheduleService *service.ScheduleService,
	subscriptionService *service.SubscriptionService,
	stateManager *state.Manager,
	adminIDs []int64,
	logger *zap.Logger,
) *Handlers {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Handlers{
		userService:         userService,
		scheduleService:     scheduleService,
		subscriptionService: subscriptionService,
		stateManager:        stateManager,
		httpClient:          &http.Client{Timeout: downloadTimeout},
		admins:              admins,
		logger:              logger,
	}
}
