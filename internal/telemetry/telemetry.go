// Package telemetry records gameplay metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/rockfall/internal/game"
	"github.com/tomz197/rockfall/internal/object"
)

var _ game.Observer = (*Recorder)(nil)

// ScopeName identifies this instrumentation library.
const ScopeName = "github.com/tomz197/rockfall"

// Recorder turns round events into metric updates. It satisfies game.Observer.
type Recorder struct {
	roundsStarted metric.Int64Counter
	destroyed     metric.Int64Counter
	craftsLost    metric.Int64Counter
	levels        metric.Int64Counter
	roundScore    metric.Int64Histogram
	sessions      metric.Int64UpDownCounter
}

// NewDefaultRecorder builds a Recorder on the global meter provider.
func NewDefaultRecorder() (*Recorder, error) {
	return NewRecorder(otel.Meter(ScopeName))
}

// NewRecorder creates all instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)
	if r.roundsStarted, err = meter.Int64Counter("rockfall.rounds.started",
		metric.WithDescription("Rounds begun from the menu or game-over screen")); err != nil {
		return nil, fmt.Errorf("rounds.started: %w", err)
	}
	if r.destroyed, err = meter.Int64Counter("rockfall.obstacles.destroyed",
		metric.WithDescription("Obstacles destroyed by projectiles, by size class")); err != nil {
		return nil, fmt.Errorf("obstacles.destroyed: %w", err)
	}
	if r.craftsLost, err = meter.Int64Counter("rockfall.crafts.lost",
		metric.WithDescription("Lives lost to obstacle impacts")); err != nil {
		return nil, fmt.Errorf("crafts.lost: %w", err)
	}
	if r.levels, err = meter.Int64Counter("rockfall.levels.cleared",
		metric.WithDescription("Waves cleared")); err != nil {
		return nil, fmt.Errorf("levels.cleared: %w", err)
	}
	if r.roundScore, err = meter.Int64Histogram("rockfall.round.score",
		metric.WithDescription("Final score of finished rounds")); err != nil {
		return nil, fmt.Errorf("round.score: %w", err)
	}
	if r.sessions, err = meter.Int64UpDownCounter("rockfall.sessions.active",
		metric.WithDescription("Connected play sessions")); err != nil {
		return nil, fmt.Errorf("sessions.active: %w", err)
	}
	return &r, nil
}

// RoundStarted counts a new round.
func (r *Recorder) RoundStarted() {
	r.roundsStarted.Add(context.Background(), 1)
}

// ObstacleDestroyed counts a destroyed obstacle of the given class.
func (r *Recorder) ObstacleDestroyed(class object.SizeClass) {
	r.destroyed.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("class", class.String())))
}

// CraftLost counts a lost life.
func (r *Recorder) CraftLost(int) {
	r.craftsLost.Add(context.Background(), 1)
}

// LevelCleared counts a cleared wave.
func (r *Recorder) LevelCleared(int) {
	r.levels.Add(context.Background(), 1)
}

// RoundOver records the final score.
func (r *Recorder) RoundOver(score int) {
	r.roundScore.Record(context.Background(), int64(score))
}

// SessionOpened marks a player session as connected.
func (r *Recorder) SessionOpened() {
	r.sessions.Add(context.Background(), 1)
}

// SessionClosed marks a player session as gone.
func (r *Recorder) SessionClosed() {
	r.sessions.Add(context.Background(), -1)
}
