package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/highscore"
	"github.com/tomz197/rockfall/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rockfall: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("ROCKFALL_CONFIG", ""))
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file if asked.
	logger := zerolog.Nop()
	if path := config.GetEnv("ROCKFALL_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		defer f.Close()
		logger = config.NewLogger(f, cfg.Log, false)
	}

	var store highscore.Store = highscore.NewMemoryStore()
	if cfg.Storage.Path != "" {
		s, err := highscore.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			logger.Error().Err(err).Str("path", cfg.Storage.Path).Msg("falling back to in-memory high score")
		} else {
			defer closeQuietly(s, logger)
			store = s
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Msg("starting local session")
	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		TermSize: draw.StdoutSize,
	})
}

func closeQuietly(c io.Closer, logger zerolog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error().Err(err).Msg("close failed")
	}
}
