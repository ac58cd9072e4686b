// Package object defines the simulated entities and their per-tick motion.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/physics"
)

// Kind tags the entity types that live in the broad-phase index.
type Kind uint8

const (
	KindObstacle Kind = iota + 1
	KindProjectile
)

// Handle identifies an entity by kind and index into its owning collection.
type Handle struct {
	Kind  Kind
	Index int
}

// Spawner receives entities created during an update step.
// Implementations queue them; nothing is added to a collection mid-iteration.
type Spawner interface {
	SpawnParticle(p *Particle)
	SpawnProjectile(p *Projectile)
}

// Controls is the craft's steering input for one tick. Fire and Hyperspace
// are already edge-resolved: true only on the tick the press began.
type Controls struct {
	TurnLeft   bool
	TurnRight  bool
	Thrust     bool
	Fire       bool
	Hyperspace bool
}

// StepContext provides everything an entity needs to advance one tick.
type StepContext struct {
	Dt      float64   // Seconds since the previous tick, already clamped
	Now     time.Time // Frame timestamp
	Rand    *rand.Rand
	Config  *config.Config
	Bounds  Bounds
	Spawner Spawner
}

// Elapsed returns Dt as a duration.
func (ctx StepContext) Elapsed() time.Duration {
	return time.Duration(ctx.Dt * float64(time.Second))
}

// Bounds is the visible plane plus the off-screen margin entities may
// travel into before wrapping.
type Bounds struct {
	Width  float64
	Height float64
	Margin float64
}

// BoundsFrom derives the world bounds from configuration.
func BoundsFrom(cfg config.WorldConfig) Bounds {
	return Bounds{Width: cfg.Width, Height: cfg.Height, Margin: cfg.Margin}
}

// Center returns the middle of the visible plane.
func (b Bounds) Center() physics.Vec2 {
	return physics.V(b.Width/2, b.Height/2)
}

// Wrap moves a position that has fully left the margin to the opposite edge.
// Positions inside [-margin, size+margin] are left untouched, so entities
// do not flicker between edges while crossing the boundary.
func (b Bounds) Wrap(p physics.Vec2) physics.Vec2 {
	return physics.V(wrapAxis(p.X, b.Width, b.Margin), wrapAxis(p.Y, b.Height, b.Margin))
}

func wrapAxis(v, size, margin float64) float64 {
	if v < -margin {
		return size + margin
	}
	if v > size+margin {
		return -margin
	}
	return v
}

// Outside reports whether p lies further than margin beyond the visible plane.
func (b Bounds) Outside(p physics.Vec2, margin float64) bool {
	return p.X < -margin || p.X > b.Width+margin || p.Y < -margin || p.Y > b.Height+margin
}

// randRange returns a uniform float in [lo, hi).
func randRange(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// randDuration returns a uniform duration in [lo, hi).
func randDuration(r *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.Int64N(int64(hi-lo)))
}

// ShouldRenderBlink reports whether an entity that is invulnerable until
// `until` should be drawn at `now`. Visibility toggles every period and is a
// pure function of the wall clock.
func ShouldRenderBlink(now, until time.Time, period time.Duration) bool {
	if !now.Before(until) || period <= 0 {
		return true
	}
	phase := now.UnixNano() / int64(period)
	return phase%2 != 0
}
