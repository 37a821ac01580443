package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/stankin_schedule/internal/app"
	"github.com/Freeeeeet/stankin_schedule/internal/config"
	"github.com/Freeeeeet/stankin_schedule/internal/controller"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/repository"
	"github.com/Freeeeeet/stankin_schedule/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel, cfg.Location)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting stankin schedule bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Int("digest_hour", cfg.DigestHour))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool, logger)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, cfg.Location, logger)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, scheduleRepo, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, scheduleService, subscriptionService, cfg.AdminIDs, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	scheduler := app.NewScheduler(
		scheduleService,
		subscriptionService,
		botController,
		formatting.Digest,
		cfg.Location,
		cfg.DigestHour,
		logger,
	)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("👋 Bot stopped")
}
