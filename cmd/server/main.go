package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/agenthands/storymap/internal/config"
	"github.com/agenthands/storymap/internal/core"
	"github.com/agenthands/storymap/internal/geocode"
	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/music"
	"github.com/agenthands/storymap/internal/search"
	"github.com/agenthands/storymap/internal/server"
	"github.com/agenthands/storymap/internal/weather"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	})
	if envErr != nil {
		logging.Info().Msg("no .env file found, using environment and config file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logging.Fatal().Err(err).Str("provider", cfg.LLM.Provider).Msg("failed to initialize LLM client")
	}
	defer func() {
		if err := completer.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close LLM client")
		}
	}()

	timeout := cfg.HTTP.Timeout.Duration
	app := core.New(cfg, core.Deps{
		LLM:      completer,
		Search:   search.New(cfg.Search, timeout),
		Geocoder: geocode.New(cfg.Geocoder, timeout),
		Music:    music.New(cfg.Music, timeout),
		Weather:  weather.New(cfg.Weather, timeout),
	})

	logging.Info().
		Str("llm_provider", completer.Name()).
		Str("port", cfg.Server.Port).
		Msg("storymap configured")

	if err := server.NewServer(app, cfg.Server).Run(ctx); err != nil {
		logging.Error().Err(err).Msg("server stopped")
	}
}
