package object

import (
	"math"
	"time"

	"github.com/tomz197/rockfall/internal/physics"
)

// Craft is the player-controlled ship.
type Craft struct {
	Pos     physics.Vec2 // Center of the ship
	Vel     physics.Vec2 // Momentum
	Heading float64      // Radians; 0 points right, -π/2 points up

	Cooldown          time.Duration // Time until the weapon can fire again
	InvulnerableUntil time.Time     // Hits are ignored before this instant
	Visible           bool          // False during the "off" phase of the invulnerability blink

	radius float64
}

// NewCraft creates a ship at pos pointing up, at rest.
func NewCraft(pos physics.Vec2, radius float64) *Craft {
	return &Craft{
		Pos:     pos,
		Heading: -math.Pi / 2,
		Visible: true,
		radius:  radius,
	}
}

// Radius returns the nominal ship size.
func (c *Craft) Radius() float64 {
	return c.radius
}

// Invulnerable reports whether hits are ignored at now.
func (c *Craft) Invulnerable(now time.Time) bool {
	return now.Before(c.InvulnerableUntil)
}

// Respawn resets the ship to pos at rest with a fresh invulnerability window.
func (c *Craft) Respawn(pos physics.Vec2, until time.Time) {
	c.Pos = pos
	c.Vel = physics.Vec2{}
	c.Heading = -math.Pi / 2
	c.InvulnerableUntil = until
	c.Visible = true
}

// Vertices returns the triangular silhouette: nose, left wing, right wing.
func (c *Craft) Vertices() [3]physics.Vec2 {
	r := c.radius
	return [3]physics.Vec2{
		c.Pos.Add(physics.FromAngle(c.Heading, r*1.9)),
		c.Pos.Add(physics.V(-r*0.9, -r*0.7).Rotate(c.Heading)),
		c.Pos.Add(physics.V(-r*0.9, r*0.7).Rotate(c.Heading)),
	}
}

// Update handles steering, thrust, momentum, firing and hyperspace.
func (c *Craft) Update(ctx StepContext, in Controls) {
	ship := ctx.Config.Ship
	dt := ctx.Dt

	switch {
	case in.TurnLeft && !in.TurnRight:
		c.Heading -= ship.TurnRate * dt
	case in.TurnRight && !in.TurnLeft:
		c.Heading += ship.TurnRate * dt
	}

	if in.Thrust {
		c.Vel = c.Vel.Add(physics.FromAngle(c.Heading, ship.Accel*dt))

		// Exhaust leaves from the back of the hull
		back := c.Pos.Sub(physics.FromAngle(c.Heading, c.radius*0.9))
		SpawnThrust(ctx, back, c.Heading)
	}

	// Friction applies every tick, thrusting or not
	c.Vel = c.Vel.Scale(ship.Friction).ClampLen(ship.MaxSpeed)

	c.Pos = ctx.Bounds.Wrap(c.Pos.Add(c.Vel.Scale(dt)))

	if in.Fire && c.Cooldown <= 0 && ctx.Spawner != nil {
		c.Cooldown = ctx.Config.Projectile.Cooldown
		ctx.Spawner.SpawnProjectile(c.shoot(ctx))
	}

	if in.Hyperspace {
		c.hyperspace(ctx)
	}

	c.Cooldown -= ctx.Elapsed()
	if c.Cooldown < 0 {
		c.Cooldown = 0
	}

	c.Visible = ShouldRenderBlink(ctx.Now, c.InvulnerableUntil, ship.BlinkPeriod)
}

// shoot creates a projectile at the nose that inherits part of the ship's momentum.
func (c *Craft) shoot(ctx StepContext) *Projectile {
	pc := ctx.Config.Projectile
	nose := c.Vertices()[0]
	vel := physics.FromAngle(c.Heading, pc.Speed).Add(c.Vel.Scale(pc.InheritVelocity))
	return NewProjectile(nose, vel, pc.Radius, pc.TTL)
}

// hyperspace teleports to a random point inside the margin and grants invulnerability.
func (c *Craft) hyperspace(ctx StepContext) {
	b := ctx.Bounds
	c.Pos = physics.V(
		randRange(ctx.Rand, b.Margin, math.Max(b.Margin, b.Width-b.Margin)),
		randRange(ctx.Rand, b.Margin, math.Max(b.Margin, b.Height-b.Margin)),
	)
	c.Vel = physics.Vec2{}
	c.InvulnerableUntil = ctx.Now.Add(ctx.Config.Ship.Invulnerable)
}
