package object

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/physics"
)

type spawnRecorder struct {
	particles   []*Particle
	projectiles []*Projectile
}

func (s *spawnRecorder) SpawnParticle(p *Particle)     { s.particles = append(s.particles, p) }
func (s *spawnRecorder) SpawnProjectile(p *Projectile) { s.projectiles = append(s.projectiles, p) }

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newStepContext(t *testing.T, dt float64) (StepContext, *spawnRecorder) {
	t.Helper()
	cfg := config.Default()
	rec := &spawnRecorder{}
	return StepContext{
		Dt:      dt,
		Now:     epoch,
		Rand:    rand.New(rand.NewPCG(1, 2)),
		Config:  &cfg,
		Bounds:  BoundsFrom(cfg.World),
		Spawner: rec,
	}, rec
}

func TestBounds_Wrap(t *testing.T) {
	b := Bounds{Width: 800, Height: 600, Margin: 64}

	assert.Equal(t, physics.V(-64, 300), b.Wrap(physics.V(800+64+0.001, 300)))
	assert.Equal(t, physics.V(800+64, 300), b.Wrap(physics.V(-64-0.001, 300)))
	assert.Equal(t, physics.V(100, -64), b.Wrap(physics.V(100, 600+64+0.5)))
	// Inside the margin nothing moves.
	assert.Equal(t, physics.V(850, -30), b.Wrap(physics.V(850, -30)))

	for _, p := range []physics.Vec2{{X: -1e6, Y: 1e6}, {X: 1e6, Y: -1e6}, {X: 400, Y: 300}} {
		w := b.Wrap(p)
		assert.GreaterOrEqual(t, w.X, -b.Margin)
		assert.LessOrEqual(t, w.X, b.Width+b.Margin)
		assert.GreaterOrEqual(t, w.Y, -b.Margin)
		assert.LessOrEqual(t, w.Y, b.Height+b.Margin)
	}
}

func TestBounds_Outside(t *testing.T) {
	b := Bounds{Width: 800, Height: 600, Margin: 64}

	assert.False(t, b.Outside(physics.V(-49, 10), 50))
	assert.True(t, b.Outside(physics.V(-51, 10), 50))
	assert.True(t, b.Outside(physics.V(10, 651), 50))
}

func TestShouldRenderBlink(t *testing.T) {
	period := 100 * time.Millisecond
	until := epoch.Add(time.Second)

	assert.True(t, ShouldRenderBlink(until, until, period), "window over")
	assert.True(t, ShouldRenderBlink(until.Add(time.Hour), until, period))

	on := ShouldRenderBlink(epoch, until, period)
	off := ShouldRenderBlink(epoch.Add(period), until, period)
	assert.NotEqual(t, on, off, "visibility toggles every period")
	assert.Equal(t, on, ShouldRenderBlink(epoch.Add(2*period), until, period))
}
