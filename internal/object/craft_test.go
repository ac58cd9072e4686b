package object

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rockfall/internal/physics"
)

func TestCraft_SpeedNeverExceedsMax(t *testing.T) {
	ctx, _ := newStepContext(t, 1.0/30)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	c.Vel = physics.V(5000, -5000)

	for i := 0; i < 600; i++ {
		c.Update(ctx, Controls{Thrust: true, TurnLeft: i%50 < 10})
		assert.LessOrEqual(t, c.Vel.Len(), ctx.Config.Ship.MaxSpeed+1e-9)
	}
}

func TestCraft_FrictionWithoutThrust(t *testing.T) {
	ctx, rec := newStepContext(t, 1.0/60)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	c.Vel = physics.V(100, 0)

	c.Update(ctx, Controls{})

	assert.InDelta(t, 100*ctx.Config.Ship.Friction, c.Vel.X, 1e-9)
	assert.Empty(t, rec.particles, "no exhaust without thrust")
}

func TestCraft_ThrustAcceleratesAlongHeadingAndEmitsExhaust(t *testing.T) {
	ctx, rec := newStepContext(t, 0.1)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	c.Heading = 0

	c.Update(ctx, Controls{Thrust: true})

	want := ctx.Config.Ship.Accel * 0.1 * ctx.Config.Ship.Friction
	assert.InDelta(t, want, c.Vel.X, 1e-9)
	assert.InDelta(t, 0, c.Vel.Y, 1e-9)
	require.Len(t, rec.particles, ctx.Config.Particle.ThrustCount)
	for _, p := range rec.particles {
		assert.Equal(t, ParticleThrust, p.Kind)
		assert.Less(t, p.Vel.X, 0.0, "exhaust points backwards")
	}
}

func TestCraft_Steering(t *testing.T) {
	ctx, _ := newStepContext(t, 0.5)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	start := c.Heading

	c.Update(ctx, Controls{TurnLeft: true})
	assert.InDelta(t, start-ctx.Config.Ship.TurnRate*0.5, c.Heading, 1e-9)

	c.Update(ctx, Controls{TurnRight: true})
	assert.InDelta(t, start, c.Heading, 1e-9)

	c.Update(ctx, Controls{TurnLeft: true, TurnRight: true})
	assert.InDelta(t, start, c.Heading, 1e-9, "opposing input cancels")
}

func TestCraft_FireRespectsCooldown(t *testing.T) {
	ctx, rec := newStepContext(t, 0.01)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)

	c.Update(ctx, Controls{Fire: true})
	require.Len(t, rec.projectiles, 1)
	assert.Equal(t, ctx.Config.Projectile.Cooldown-10*time.Millisecond, c.Cooldown)

	p := rec.projectiles[0]
	assert.InDelta(t, ctx.Config.Projectile.Speed, p.Vel.Len(), 1e-6)
	assert.InDelta(t, c.Vertices()[0].X, p.Pos.X, 1e-9)

	c.Update(ctx, Controls{Fire: true})
	assert.Len(t, rec.projectiles, 1, "still cooling down")

	for c.Cooldown > 0 {
		c.Update(ctx, Controls{})
	}
	assert.Equal(t, time.Duration(0), c.Cooldown, "floored at zero")

	c.Update(ctx, Controls{Fire: true})
	assert.Len(t, rec.projectiles, 2)
}

func TestCraft_Hyperspace(t *testing.T) {
	ctx, _ := newStepContext(t, 0.01)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	c.Vel = physics.V(50, 50)

	c.Update(ctx, Controls{Hyperspace: true})

	b := ctx.Bounds
	assert.Equal(t, physics.Vec2{}, c.Vel)
	assert.GreaterOrEqual(t, c.Pos.X, b.Margin)
	assert.LessOrEqual(t, c.Pos.X, b.Width-b.Margin)
	assert.GreaterOrEqual(t, c.Pos.Y, b.Margin)
	assert.LessOrEqual(t, c.Pos.Y, b.Height-b.Margin)
	assert.True(t, c.Invulnerable(ctx.Now))
	assert.False(t, c.Invulnerable(ctx.Now.Add(ctx.Config.Ship.Invulnerable)))
}

func TestCraft_Vertices(t *testing.T) {
	c := NewCraft(physics.V(0, 0), 10)
	c.Heading = 0

	v := c.Vertices()
	assert.InDelta(t, 19, v[0].X, 1e-9)
	assert.InDelta(t, 0, v[0].Y, 1e-9)
	assert.InDelta(t, -9, v[1].X, 1e-9)
	assert.InDelta(t, -7, v[1].Y, 1e-9)
	assert.InDelta(t, -9, v[2].X, 1e-9)
	assert.InDelta(t, 7, v[2].Y, 1e-9)

	c.Heading = math.Pi / 2
	assert.InDelta(t, 19, c.Vertices()[0].Y, 1e-9)
}

func TestCraft_BlinkWhileInvulnerable(t *testing.T) {
	ctx, _ := newStepContext(t, 0.01)
	c := NewCraft(ctx.Bounds.Center(), ctx.Config.Ship.Radius)
	c.InvulnerableUntil = ctx.Now.Add(time.Second)

	seen := map[bool]bool{}
	for i := 0; i < 4; i++ {
		ctx.Now = epoch.Add(time.Duration(i) * ctx.Config.Ship.BlinkPeriod)
		c.Update(ctx, Controls{})
		seen[c.Visible] = true
	}
	assert.True(t, seen[true] && seen[false])

	ctx.Now = epoch.Add(2 * time.Second)
	c.Update(ctx, Controls{})
	assert.True(t, c.Visible)
}
