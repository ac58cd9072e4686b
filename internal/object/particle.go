package object

import (
	"math"
	"sync"
	"time"

	"github.com/tomz197/rockfall/internal/physics"
)

// ParticleKind selects decay and render hints for a particle.
type ParticleKind uint8

const (
	ParticleThrust ParticleKind = iota
	ParticleExplosion
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived cosmetic effect. Particles never collide or wrap.
type Particle struct {
	Pos    physics.Vec2
	Vel    physics.Vec2
	TTL    time.Duration // Remaining lifetime
	MaxTTL time.Duration // Initial lifetime (for fade calculation)
	Kind   ParticleKind
	Dead   bool
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec2, ttl time.Duration, kind ParticleKind) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		Pos:    pos,
		Vel:    vel,
		TTL:    ttl,
		MaxTTL: ttl,
		Kind:   kind,
	}
	return p
}

// Release returns the particle to the pool for reuse.
// Must only be called once the particle has left every collection.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Alpha returns the remaining-life fraction in [0, 1] for fading.
func (p *Particle) Alpha() float64 {
	if p.MaxTTL <= 0 {
		return 0
	}
	return physics.Clamp(float64(p.TTL)/float64(p.MaxTTL), 0, 1)
}

// Update applies drag, moves the particle and checks lifetime.
func (p *Particle) Update(ctx StepContext) {
	if p.Dead {
		return
	}

	p.TTL -= ctx.Elapsed()
	if p.TTL <= 0 {
		p.Dead = true
		return
	}

	p.Vel = p.Vel.Scale(ctx.Config.Particle.Drag)
	p.Pos = p.Pos.Add(p.Vel.Scale(ctx.Dt))
}

// SpawnExplosion emits a burst of debris at pos. Speed scales with the
// exploding body's radius relative to a large obstacle.
func SpawnExplosion(ctx StepContext, pos physics.Vec2, radius float64) {
	if ctx.Spawner == nil {
		return
	}
	pc := ctx.Config.Particle
	scale := radius / ctx.Config.Obstacle.RadiusLarge

	count := pc.ExplosionMin
	if pc.ExplosionMax > pc.ExplosionMin {
		count += ctx.Rand.IntN(pc.ExplosionMax - pc.ExplosionMin)
	}
	for i := 0; i < count; i++ {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		speed := randRange(ctx.Rand, pc.ExplosionSpeedMin, pc.ExplosionSpeedMax) * scale
		ttl := randDuration(ctx.Rand, pc.TTLMin, pc.TTLMax)
		ctx.Spawner.SpawnParticle(NewParticle(pos, physics.FromAngle(angle, speed), ttl, ParticleExplosion))
	}
}

// SpawnThrust emits exhaust at pos in a cone opposite to heading.
func SpawnThrust(ctx StepContext, pos physics.Vec2, heading float64) {
	if ctx.Spawner == nil {
		return
	}
	pc := ctx.Config.Particle

	for i := 0; i < pc.ThrustCount; i++ {
		angle := heading + math.Pi + randRange(ctx.Rand, -pc.ThrustSpread, pc.ThrustSpread)
		speed := randRange(ctx.Rand, pc.ThrustSpeedMin, pc.ThrustSpeedMax)
		ttl := randDuration(ctx.Rand, pc.TTLMin, pc.TTLMax)
		ctx.Spawner.SpawnParticle(NewParticle(pos, physics.FromAngle(angle, speed), ttl, ParticleThrust))
	}
}
