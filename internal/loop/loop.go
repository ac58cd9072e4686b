// Package loop drives a session: it reads keys, ticks the round once per
// frame and draws the result to a terminal.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/game"
	"github.com/tomz197/rockfall/internal/highscore"
	"github.com/tomz197/rockfall/internal/input"
)

const (
	targetFPS       = 60
	targetFrameTime = time.Second / targetFPS
)

// ErrIdleTimeout is returned by Run when no key was pressed for Options.IdleTimeout.
var ErrIdleTimeout = errors.New("session idle for too long")

// Options configures a session.
type Options struct {
	Config   config.Config
	Store    highscore.Store // Defaults to an in-memory store
	Logger   zerolog.Logger
	Observer game.Observer
	TermSize draw.TermSizeFunc // Defaults to the size of standard output

	// IdleTimeout ends the session after this long without a key press.
	// Zero disables it.
	IdleTimeout time.Duration
	// IdleWarning is how long before the timeout a warning is shown.
	IdleWarning time.Duration
}

// Run plays one session until the player quits, the input closes, ctx is
// cancelled or the session goes idle.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	roundOpts := []game.Option{game.WithLogger(opts.Logger)}
	if opts.Store != nil {
		roundOpts = append(roundOpts, game.WithStore(opts.Store))
	}
	if opts.Observer != nil {
		roundOpts = append(roundOpts, game.WithObserver(opts.Observer))
	}
	round, err := game.NewRound(opts.Config, roundOpts...)
	if err != nil {
		return err
	}

	stream := input.StartStream(r)
	s := newSession(round, func() input.Keys { return input.ReadKeys(stream) }, w, opts)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	ticker := time.NewTicker(targetFrameTime)
	defer ticker.Stop()

	s.lastInput = time.Now()
	for {
		done, err := s.frame(time.Now())
		if err != nil || done {
			return err
		}

		select {
		case <-ctx.Done():
			opts.Logger.Debug().Err(ctx.Err()).Msg("session cancelled")
			return nil
		case <-ticker.C:
		}
	}
}

// session holds the per-connection rendering and input state around a round.
type session struct {
	round    *game.Round
	readKeys func() input.Keys
	edges    input.EdgeDetector
	opts     Options
	log      zerolog.Logger

	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	view     draw.Viewport
	termSize draw.TermSizeFunc
	termW    int
	termH    int

	lastInput time.Time
	idle      bool
}

func newSession(round *game.Round, readKeys func() input.Keys, w io.Writer, opts Options) *session {
	termSize := opts.TermSize
	if termSize == nil {
		termSize = draw.StdoutSize
	}
	world := opts.Config.World

	return &session{
		round:    round,
		readKeys: readKeys,
		opts:     opts,
		log:      opts.Logger,
		canvas:   draw.NewCanvas(1, 1, world.Width, world.Height),
		cw:       draw.NewChunkWriter(w),
		termSize: termSize,
	}
}

// frame runs one input, tick and draw cycle at now. It reports done when
// the session should end.
func (s *session) frame(now time.Time) (bool, error) {
	keys := s.readKeys()
	intent := input.FromKeys(keys)
	if intent.Quit {
		s.log.Debug().Msg("quit requested")
		return true, nil
	}

	if keys.Any() {
		s.lastInput = now
	}
	if s.opts.IdleTimeout > 0 {
		idleFor := now.Sub(s.lastInput)
		if idleFor >= s.opts.IdleTimeout {
			s.log.Info().Dur("idle", idleFor).Msg("disconnecting idle session")
			return true, ErrIdleTimeout
		}
		s.idle = idleFor >= s.opts.IdleTimeout-s.opts.IdleWarning
	}

	s.round.Tick(now, s.edges.Next(intent))

	if err := s.updateScreen(); err != nil {
		return true, err
	}
	return false, s.drawFrame(now)
}

// updateScreen refits the canvas when the terminal size changes.
func (s *session) updateScreen() error {
	w, h, err := s.termSize()
	if err != nil {
		return err
	}
	if w == s.termW && h == s.termH {
		return nil
	}

	s.termW, s.termH = w, h
	s.view = draw.FitViewport(w, h, s.opts.Config.World.Width, s.opts.Config.World.Height)
	s.canvas.Resize(s.view.Cols, s.view.Rows)
	s.cw.SetOffset(s.view.OffCol, s.view.OffRow)
	s.log.Debug().Int("cols", w).Int("rows", h).Msg("terminal resized")
	return nil
}
