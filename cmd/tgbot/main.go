package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/TradeVault/internal/app"
	"github.com/Alias1177/TradeVault/internal/config"
	"github.com/Alias1177/TradeVault/internal/logger"
	"github.com/Alias1177/TradeVault/internal/metrics"
	"github.com/Alias1177/TradeVault/internal/model"
	"github.com/Alias1177/TradeVault/internal/scheduler"
	"github.com/Alias1177/TradeVault/internal/screener"
	"github.com/Alias1177/TradeVault/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Dir:         cfg.LogDir,
		ServiceName: "tgbot",
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Get bot token from environment
	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN not set in environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()

	bot, err := telegram.NewBot(cfg.TelegramBotToken, telegram.NewHandler(a, cfg.Backtest, cfg.MinScore))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, a.Metrics)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Metrics server shutdown failed")
			}
		}()
	}

	sched := scheduler.NewScheduler(ctx, a.Board, []model.Market{model.MarketUS, model.MarketIndia},
		func(r screener.RefreshReport) {
			log.Debug().Str("market", string(r.Market)).Int("updated", r.Updated).Msg("Scheduled refresh done")
		})
	if a.Board.Live() {
		if err := sched.Register(cfg.RefreshCron); err != nil {
			log.Fatal().Err(err).Msg("Invalid REFRESH_CRON")
		}
		go sched.RunNow()
	} else {
		log.Info().Msg("TWELVE_API_KEY not set, serving simulated data only")
	}

	if cfg.PicksCron != "" && len(cfg.BroadcastChats) > 0 {
		err := sched.Schedule("picks", cfg.PicksCron, func(ctx context.Context) {
			picks, err := a.Picks(ctx, true)
			if err != nil {
				log.Error().Err(err).Msg("Daily picks failed")
				return
			}
			bot.Broadcast(ctx, cfg.BroadcastChats, picks)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid PICKS_CRON")
		}
	}

	sched.Start()
	defer sched.Stop()

	log.Info().Msg("Bot started")
	bot.Run(ctx)
	log.Info().Msg("Shutting down")
}
