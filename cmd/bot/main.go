package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	medgramroot "github.com/medgram/medgram"
	"github.com/medgram/medgram/internal/api"
	"github.com/medgram/medgram/internal/config"
	"github.com/medgram/medgram/internal/handler"
	"github.com/medgram/medgram/internal/middleware"
	"github.com/medgram/medgram/internal/repository"
	"github.com/medgram/medgram/internal/service"
	"github.com/medgram/medgram/internal/session"
	"github.com/medgram/medgram/internal/webapp"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(medgramroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Backend gateway and services
	apiClient := api.New(cfg.APIBaseURL, cfg.UploadBaseURL())
	stateRepo := repository.NewPostgresStateRepository(pool)
	sessions := session.NewStore(stateRepo, apiClient)
	bridge := webapp.NewBridge(cfg.BotToken)
	inviteService := service.NewInviteService(apiClient)
	infoPages := service.NewInfoPageService()
	guard := middleware.NewGuard(apiClient)

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(cfg),
			middleware.SessionLoader(sessions),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler and register routes
	h := handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		API:         apiClient,
		Sessions:    sessions,
		Bridge:      bridge,
		Invite:      inviteService,
		InfoPages:   infoPages,
		Guard:       guard,
		BotUsername: me.Username,
	})
	h.Register()

	slog.Info("bot started")
	b.Start(ctx)
	slog.Info("bot stopped")
}
