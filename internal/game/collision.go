package game

import (
	"math"

	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// rebuildIndex repopulates the broad-phase grid with live obstacles and
// projectiles.
func (r *Round) rebuildIndex() {
	r.grid.Clear()
	for i, o := range r.obstacles {
		if o.Dead {
			continue
		}
		r.grid.Insert(object.Handle{Kind: object.KindObstacle, Index: i}, o.Pos.X, o.Pos.Y, o.Radius)
	}
	for i, p := range r.projectiles {
		if p.Dead {
			continue
		}
		r.grid.Insert(object.Handle{Kind: object.KindProjectile, Index: i}, p.Pos.X, p.Pos.Y, p.Radius)
	}
}

// resolveProjectileHits destroys each obstacle that a live projectile
// overlaps. A projectile is consumed by its first hit.
func (r *Round) resolveProjectileHits(ctx object.StepContext) {
	query := r.cfg.Grid.ProjectileQuery

	for _, p := range r.projectiles {
		if p.Dead {
			continue
		}
		r.grid.Query(p.Pos.X, p.Pos.Y, query, func(h object.Handle) bool {
			if h.Kind != object.KindObstacle {
				return false
			}
			o := r.obstacles[h.Index]
			if o.Dead || !physics.CirclesOverlap(p.Pos, p.Radius, o.Pos, o.Radius) {
				return false
			}
			p.Dead = true
			r.destroyObstacle(ctx, o)
			return true
		})
	}
}

// destroyObstacle scores o, bursts it into particles and queues its fragments.
func (r *Round) destroyObstacle(ctx object.StepContext, o *object.Obstacle) {
	cfg := r.cfg.Obstacle

	o.Dead = true
	r.score += object.Score(cfg, o.Class)
	object.SpawnExplosion(ctx, o.Pos, o.Radius)

	class, n := o.Class.Fragments()
	for i := 0; i < n; i++ {
		speed := cfg.BaseSpeed * (cfg.FragmentSpeedMin + r.rng.Float64()*(cfg.FragmentSpeedMax-cfg.FragmentSpeedMin))
		vel := physics.FromAngle(r.rng.Float64()*2*math.Pi, speed)
		r.fragments = append(r.fragments, object.NewObstacleWithVelocity(cfg, r.rng, o.Pos, vel, class))
	}

	r.obs.ObstacleDestroyed(o.Class)
	r.log.Debug().
		Stringer("class", o.Class).
		Int("fragments", n).
		Int("score", r.score).
		Msg("obstacle destroyed")
}

// resolveCraftHits checks the craft's reduced hitbox against nearby
// obstacle outlines. Nothing happens while the craft is invulnerable.
func (r *Round) resolveCraftHits(ctx object.StepContext) {
	c := r.craft
	if c.Invulnerable(ctx.Now) {
		return
	}
	radius := c.Radius() * r.cfg.Ship.HitboxScale

	r.grid.Query(c.Pos.X, c.Pos.Y, r.cfg.Grid.CraftQuery, func(h object.Handle) bool {
		if h.Kind != object.KindObstacle {
			return false
		}
		o := r.obstacles[h.Index]
		if o.Dead {
			return false
		}
		// Every vertex lies within o.Radius, so the bounding circle rejects cheaply.
		if !physics.CirclesOverlap(c.Pos, radius, o.Pos, o.Radius) {
			return false
		}
		r.polyBuf = o.Polygon(r.polyBuf)
		if !physics.CirclePolygon(c.Pos, radius, r.polyBuf) {
			return false
		}
		r.loseLife(ctx)
		return true
	})
}

// loseLife costs one life, then either respawns the craft or ends the round.
func (r *Round) loseLife(ctx object.StepContext) {
	c := r.craft
	r.lives--
	object.SpawnExplosion(ctx, c.Pos, c.Radius()*r.cfg.Ship.ExplosionSize)
	r.obs.CraftLost(r.lives)
	r.log.Info().Int("livesLeft", r.lives).Msg("craft lost")

	if r.lives <= 0 {
		r.gameOver()
		return
	}
	c.Respawn(r.bounds.Center(), ctx.Now.Add(r.cfg.Ship.Invulnerable))
}

func (r *Round) gameOver() {
	r.state = StateGameOver
	r.saveHighScore()
	r.obs.RoundOver(r.score)
	r.log.Info().
		Int("score", r.score).
		Int("level", r.level).
		Msg("round over")
}

// advanceLevel moves to the next level and sends in a bigger wave.
func (r *Round) advanceLevel() {
	r.level++
	wave := r.director.Wave(r.level)
	r.obstacles = append(r.obstacles, wave...)
	r.obs.LevelCleared(r.level)
	r.log.Info().
		Int("level", r.level).
		Int("obstacles", len(wave)).
		Msg("level cleared")
}
