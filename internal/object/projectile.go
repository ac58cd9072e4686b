package object

import (
	"time"

	"github.com/tomz197/rockfall/internal/physics"
)

// Projectile is a shot fired by the craft. Projectiles never wrap.
type Projectile struct {
	Pos    physics.Vec2
	Vel    physics.Vec2
	Radius float64
	TTL    time.Duration // Remaining lifetime
	Dead   bool          // Marked for removal at the end of the frame
}

// NewProjectile creates a projectile at pos moving with vel.
func NewProjectile(pos, vel physics.Vec2, radius float64, ttl time.Duration) *Projectile {
	return &Projectile{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		TTL:    ttl,
	}
}

// Update moves the projectile and checks lifetime and bounds.
func (p *Projectile) Update(ctx StepContext) {
	if p.Dead {
		return
	}

	p.TTL -= ctx.Elapsed()
	if p.TTL <= 0 {
		p.Dead = true
		return
	}

	p.Pos = p.Pos.Add(p.Vel.Scale(ctx.Dt))

	if ctx.Bounds.Outside(p.Pos, ctx.Config.Projectile.KillMargin) {
		p.Dead = true
	}
}
