// Command badgagotchi runs the virtual pet daemon: one simulation
// machine driven by a fixed-period tick loop, with a local web UI,
// an optional Discord frontend, and an optional AI voice.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"badgagotchi/internal/config"
	"badgagotchi/internal/discord"
	"badgagotchi/internal/host"
	"badgagotchi/internal/sim"
	"badgagotchi/internal/store"
	"badgagotchi/internal/voice"
	"badgagotchi/internal/web"
)

func main() {
	configPath := flag.String("config", "badgagotchi.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	backend, closeBackend, err := openBackend(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	if closeBackend != nil {
		defer closeBackend()
	}
	keeper := store.NewKeeper(backend)

	machine := sim.NewMachine(tuningFromConfig(cfg.Sim), keeper, sim.LogIndicator{}, nil, nil)
	h := host.New(machine, cfg.Sim.TickPeriod)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Web.Enabled {
		hub := web.NewHub(h)
		go hub.Run(ctx)
		h.SetBroadcaster(hub)

		srv := web.NewServer(cfg.Web.Addr, hub, h)
		go func() {
			if err := srv.Run(ctx); err != nil {
				slog.Error("web server stopped", "err", err)
			}
		}()
	}

	if cfg.Discord.Enabled {
		bot, err := discord.NewBot(cfg.Discord.BotToken, cfg.Discord.ChannelID, cfg.Discord.OwnerIDs, h)
		if err != nil {
			return fmt.Errorf("creating discord bot: %w", err)
		}
		h.AddListener(bot)
		go bot.Start(ctx)
	}

	if v := voice.New(ctx, voiceConfig(cfg), h.SetRemark); v != nil {
		h.AddListener(v)
	}

	if err := h.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	slog.Info("goodbye")
	return nil
}

func openBackend(cfg config.StoreConfig) (store.Backend, func() error, error) {
	switch cfg.Backend {
	case "sqlite":
		b, err := store.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		b, err := store.NewFileBackend(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	}
}

func tuningFromConfig(cfg config.SimConfig) sim.Tuning {
	return sim.Tuning{
		TickThreshold:    cfg.TickThreshold,
		FgHungerDecay:    cfg.Foreground.HungerDecay,
		FgHappinessDecay: cfg.Foreground.HappinessDecay,
		FgPooGrowth:      cfg.Foreground.PooGrowth,
		BgHungerDecay:    cfg.Background.HungerDecay,
		BgHappinessDecay: cfg.Background.HappinessDecay,
		BgPooGrowth:      cfg.Background.PooGrowth,
		FeedIncrement:    cfg.FeedIncrement,
		PlayIncrement:    cfg.PlayIncrement,
	}
}

func voiceConfig(cfg *config.Config) voice.Config {
	return voice.Config{
		ClaudeAPIKey: cfg.Claude.APIKey,
		ClaudeModel:  cfg.Claude.Model,
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		Provider:     cfg.AI.Provider,
		MaxTokens:    cfg.Claude.MaxTokens,
		RateLimit:    cfg.Claude.RateLimit,
		RateWindow:   cfg.Claude.RateWindow,
	}
}
