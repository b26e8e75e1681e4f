// Package main contains the entrypoint for the business-chat mirror bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"bizwatchbot/internal/bot"
	"bizwatchbot/internal/bot/handlers"
	"bizwatchbot/internal/bot/tasks"
	"bizwatchbot/internal/config"
	"bizwatchbot/internal/logger"
	"bizwatchbot/internal/notify"
	"bizwatchbot/internal/store"
	"bizwatchbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// store, renderer, bot, scheduler), handles graceful shutdown, and returns an
// exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	redisClient := store.NewClient(cfg.Redis)
	st := store.NewStore(redisClient, log, cfg.Snapshot.TTL)

	// A dead backend at startup is fatal; without it no event can be
	// snapshotted or reconciled.
	if err := st.Ping(ctx); err != nil {
		log.Error("Snapshot backend health check failed", "addr", cfg.Redis.Addr, "error", err)
		return 1
	}
	log.Info("Connected to snapshot backend", "addr", cfg.Redis.Addr)

	admin := store.NewAdminIdentity(st)
	if err := admin.Load(ctx); err != nil {
		log.Warn("Failed to load administrator identity, awaiting registration", "error", err)
	} else if id, ok := admin.ID(); ok {
		log.Info("Loaded administrator identity", "user_id", id)
	} else {
		log.Warn("No administrator registered yet. Awaiting /start command.")
	}

	renderer, err := notify.NewRenderer(cfg.Notify.Timezone)
	if err != nil {
		log.Error("Failed to initialize notification renderer", "timezone", cfg.Notify.Timezone, "error", err)
		return 1
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	botInfo, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", botInfo.ID, "bot_username", botInfo.Username)

	client := telegram.NewClient(tg)
	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      st,
		Admin:      admin,
		Renderer:   renderer,
		Dispatcher: notify.NewDispatcher(client, log),
		Messenger:  client,
	}
	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Config: cfg,
		Store:  st,
		Admin:  admin,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, st, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if closeErr := redisClient.Close(); closeErr != nil {
		log.Error("Error closing Redis client", "error", closeErr)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
