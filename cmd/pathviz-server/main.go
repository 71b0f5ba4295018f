// Command pathviz-server hosts visualizer sessions over HTTP and websockets.
//
// Settings come from .env and the environment; see internal/config.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/katalvlaran/pathviz/internal/config"
	"github.com/katalvlaran/pathviz/internal/history"
	"github.com/katalvlaran/pathviz/internal/httpserver"
	"github.com/katalvlaran/pathviz/internal/session"
	"github.com/katalvlaran/pathviz/playback"
)

func main() {
	if terminal.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	var (
		hist       *history.Store
		onComplete func(string) func(playback.Summary)
	)
	if cfg.HistoryDSN != "" {
		hist, err = history.Open(cfg.HistoryDSN, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.HistoryDSN).Msg("open history")
		}
		defer hist.Close()
		onComplete = hist.Recorder
	} else {
		log.Warn().Msg("HISTORY_DSN empty; run history disabled")
	}

	mgr := session.NewManager(session.Config{
		Playback:   cfg.PlaybackOptions(),
		OnComplete: onComplete,
		Logger:     log.Logger,
	})
	defer mgr.Close()

	srv := httpserver.New(mgr, hist, httpserver.Options{
		CellSize:     cfg.CellSize,
		MaxCells:     cfg.MaxCells,
		MaxCellSize:  cfg.MaxCellSize,
		ClientOrigin: cfg.ClientOrigin,
		Logger:       log.Logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("port", cfg.Port).Msg("starting pathviz-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("shut down")
}
