package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"leaguelens/internal/api/sleeper"
	"leaguelens/internal/bot"
	"leaguelens/internal/config"
	"leaguelens/internal/repository/memory"
	"leaguelens/internal/scheduler"
	"leaguelens/internal/server"
	"leaguelens/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	client := sleeper.NewClient(cfg.SleeperAPI)
	repo := memory.NewRepository()
	svc := service.NewAnalyticsService(client, cfg.League, repo)

	srv := server.New(cfg.Server.ListenAddr, svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, svc)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(svc, telegramBot.SendMessage)
		if err != nil {
			return err
		}

		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
