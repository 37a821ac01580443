package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

const (
	UseSchedule = "use:"      // use:123
	SetSubgroup = "subgroup:" // subgroup:A
	ShowWeek    = "week:"     // week:2024-09-09
	Noop        = "noop"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	hc := common.NewHandlerContext(ctx, b, callback, h.logger)
	if hc.Message == nil {
		hc.AnswerAlert(common.ErrorMessage(common.ErrNoMessage))
		return
	}

	switch {
	case data == Noop:
		hc.Answer("")
	case strings.HasPrefix(data, UseSchedule):
		h.handleUseSchedule(hc)
	case strings.HasPrefix(data, SetSubgroup):
		h.handleSetSubgroup(hc)
	case strings.HasPrefix(data, ShowWeek):
		h.handleShowWeek(hc)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", data))
		hc.Answer("")
	}
}
