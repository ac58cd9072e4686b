package game

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// Director introduces new obstacles: a timed trickle that grows with the
// level, and a full wave whenever the field is cleared.
type Director struct {
	cfg    config.ObstacleConfig
	bounds object.Bounds
	rng    *rand.Rand

	// LastSpawn is when the trickle last fired.
	LastSpawn time.Time
}

// NewDirector creates a director for the given world.
func NewDirector(cfg config.ObstacleConfig, bounds object.Bounds, rng *rand.Rand) *Director {
	return &Director{cfg: cfg, bounds: bounds, rng: rng}
}

// Reset restarts the trickle timer.
func (d *Director) Reset(now time.Time) {
	d.LastSpawn = now
}

// Trickle returns 1 + level/2 large obstacles once the spawn interval has
// passed since the last trickle, and nil otherwise.
func (d *Director) Trickle(now time.Time, level int) []*object.Obstacle {
	if now.Sub(d.LastSpawn) <= d.cfg.SpawnEvery {
		return nil
	}
	d.LastSpawn = now
	return d.spawn(1 + level/2)
}

// Wave returns the level + 3 large obstacles that follow a cleared field.
func (d *Director) Wave(level int) []*object.Obstacle {
	return d.spawn(level + 3)
}

// Seed returns the opening wave of a round.
func (d *Director) Seed(count int) []*object.Obstacle {
	return d.spawn(count)
}

func (d *Director) spawn(n int) []*object.Obstacle {
	out := make([]*object.Obstacle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, object.NewObstacle(d.cfg, d.rng, d.edgePosition(), object.Large))
	}
	return out
}

// edgePosition picks a point just past one of the four screen edges.
func (d *Director) edgePosition() physics.Vec2 {
	b := d.bounds
	m := b.Margin

	switch d.rng.IntN(4) {
	case 0: // Left
		return physics.V(-m, d.rng.Float64()*b.Height)
	case 1: // Right
		return physics.V(b.Width+m, d.rng.Float64()*b.Height)
	case 2: // Top
		return physics.V(d.rng.Float64()*b.Width, -m)
	default: // Bottom
		return physics.V(d.rng.Float64()*b.Width, b.Height+m)
	}
}
