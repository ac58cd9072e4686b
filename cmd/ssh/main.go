package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/highscore"
	"github.com/tomz197/rockfall/internal/loop"
	"github.com/tomz197/rockfall/internal/telemetry"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	defaultIdleTimeout = 2 * time.Minute
	idleWarning        = 30 * time.Second

	defaultMetricsInterval = time.Minute
)

// app holds what every SSH session shares.
type app struct {
	cfg      config.Config
	store    highscore.Store
	recorder *telemetry.Recorder
	log      zerolog.Logger

	idleTimeout time.Duration
}

func main() {
	cfg, err := config.Load(config.GetEnv("ROCKFALL_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "rockfall: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stdout, cfg.Log, true)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info().Str("host", host).Str("port", port).Str("hostKey", hostKeyPath).Msg("ssh config")

	a := &app{
		cfg:         cfg,
		log:         logger,
		store:       highscore.NewMemoryStore(),
		idleTimeout: config.GetEnvDuration("SSH_IDLE_TIMEOUT", defaultIdleTimeout),
	}
	if cfg.Storage.Path != "" {
		s, err := highscore.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("failed to open high score store")
		}
		defer s.Close()
		a.store = s
	}
	shutdownMetrics, err := setupMetrics(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up metrics")
	}
	defer shutdownMetrics()
	if a.recorder, err = telemetry.NewDefaultRecorder(); err != nil {
		logger.Fatal().Err(err).Msg("failed to create metric instruments")
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Input latency matters more than throughput.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info().Msgf("starting SSH server on %s", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

// setupMetrics installs the global meter provider. Metrics go to the file
// named by METRICS_FILE, or to stdout alongside the logs.
func setupMetrics(logger zerolog.Logger) (func(), error) {
	w := io.Writer(os.Stdout)
	closeFile := func() {}
	if path := config.GetEnv("METRICS_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open metrics file: %w", err)
		}
		w = f
		closeFile = func() { _ = f.Close() }
	}

	provider, err := telemetry.NewProvider(telemetry.ProviderConfig{
		ServiceName: "rockfall-ssh",
		Interval:    config.GetEnvDuration("METRICS_INTERVAL", defaultMetricsInterval),
		Writer:      w,
	})
	if err != nil {
		closeFile()
		return nil, err
	}
	otel.SetMeterProvider(provider)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("metrics shutdown error")
		}
		closeFile()
	}, nil
}

// gameMiddleware plays one independent round per session.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.New()
		log := a.log.With().Str("session", id.String()).Str("user", sess.User()).Logger()
		log.Info().
			Str("term", pty.Term).
			Int("cols", pty.Window.Width).
			Int("rows", pty.Window.Height).
			Msg("session started")

		size := draw.NewSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				size.Update(win.Width, win.Height)
			}
		}()

		a.recorder.SessionOpened()
		defer a.recorder.SessionClosed()

		err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, loop.Options{
			Config:      a.cfg,
			Store:       a.store,
			Logger:      log,
			Observer:    a.recorder,
			TermSize:    size.Size,
			IdleTimeout: a.idleTimeout,
			IdleWarning: idleWarning,
		})
		switch {
		case errors.Is(err, loop.ErrIdleTimeout):
			fmt.Fprintln(sess, "Disconnected for inactivity.")
		case err != nil:
			log.Error().Err(err).Msg("game error")
		}

		log.Info().Msg("session ended")
		next(sess)
	}
}
