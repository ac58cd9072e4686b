package game

import (
	"time"

	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
)

// step runs one PLAYING frame: spawn, integrate, index, collide, purge,
// then check whether the field was cleared.
func (r *Round) step(now time.Time, in input.Frame) {
	ctx := r.stepContext(now)

	r.obstacles = append(r.obstacles, r.director.Trickle(now, r.level)...)
	r.integrate(ctx, controlsFrom(in))
	r.rebuildIndex()
	r.resolveProjectileHits(ctx)
	if r.state == StatePlaying {
		r.resolveCraftHits(ctx)
	}
	r.purge()

	if r.state == StatePlaying && len(r.obstacles) == 0 {
		r.advanceLevel()
	}
}

// stepContext computes the clamped frame delta and records now as the last tick.
func (r *Round) stepContext(now time.Time) object.StepContext {
	dt := now.Sub(r.lastTick).Seconds()
	if dt < 0 {
		dt = 0
	}
	if limit := r.cfg.World.MaxFrameDelta.Seconds(); dt > limit {
		dt = limit
	}
	r.lastTick = now

	return object.StepContext{
		Dt:      dt,
		Now:     now,
		Rand:    r.rng,
		Config:  &r.cfg,
		Bounds:  r.bounds,
		Spawner: &r.spawned,
	}
}

func controlsFrom(in input.Frame) object.Controls {
	return object.Controls{
		TurnLeft:   in.TurnLeft,
		TurnRight:  in.TurnRight,
		Thrust:     in.Thrust,
		Fire:       in.Pressed.Fire,
		Hyperspace: in.Pressed.Hyperspace,
	}
}

// integrate advances every entity by ctx.Dt. Shots fired this frame join
// the projectile list afterwards so they are indexed for collision.
func (r *Round) integrate(ctx object.StepContext, controls object.Controls) {
	r.craft.Update(ctx, controls)
	for _, p := range r.projectiles {
		p.Update(ctx)
	}
	for _, o := range r.obstacles {
		o.Update(ctx)
	}
	for _, p := range r.particles {
		p.Update(ctx)
	}

	r.projectiles = append(r.projectiles, r.spawned.projectiles...)
	clear(r.spawned.projectiles)
	r.spawned.projectiles = r.spawned.projectiles[:0]
}

// purge drops dead entities and appends everything queued during the frame.
func (r *Round) purge() {
	r.obstacles = compact(r.obstacles, func(o *object.Obstacle) bool { return o.Dead }, nil)
	r.projectiles = compact(r.projectiles, func(p *object.Projectile) bool { return p.Dead }, nil)
	r.particles = compact(r.particles, func(p *object.Particle) bool { return p.Dead }, (*object.Particle).Release)

	r.obstacles = append(r.obstacles, r.fragments...)
	clear(r.fragments)
	r.fragments = r.fragments[:0]

	r.particles = append(r.particles, r.spawned.particles...)
	clear(r.spawned.particles)
	r.spawned.particles = r.spawned.particles[:0]
	r.projectiles = append(r.projectiles, r.spawned.projectiles...)
	clear(r.spawned.projectiles)
	r.spawned.projectiles = r.spawned.projectiles[:0]
}

// compact removes dead items in place, preserving order.
func compact[T any](items []T, dead func(T) bool, release func(T)) []T {
	kept := items[:0] // reuse backing array
	for _, it := range items {
		if dead(it) {
			if release != nil {
				release(it)
			}
			continue
		}
		kept = append(kept, it)
	}
	clear(items[len(kept):])
	return kept
}
