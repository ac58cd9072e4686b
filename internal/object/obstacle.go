package object

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/physics"
)

// SizeClass represents the size category of an obstacle.
// Smaller classes are worth more and do not fragment further.
type SizeClass int

const (
	Small  SizeClass = 1
	Medium SizeClass = 2
	Large  SizeClass = 3
)

func (s SizeClass) String() string {
	switch s {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return fmt.Sprintf("SizeClass(%d)", int(s))
	}
}

// Fragments returns the class and count of pieces a destroyed obstacle
// breaks into. Small obstacles leave nothing behind.
func (s SizeClass) Fragments() (SizeClass, int) {
	switch s {
	case Large:
		return Medium, 2
	case Medium:
		return Small, 2
	default:
		return 0, 0
	}
}

// NominalRadius returns the configured radius for a class before jitter.
func NominalRadius(cfg config.ObstacleConfig, s SizeClass) float64 {
	switch s {
	case Large:
		return cfg.RadiusLarge
	case Medium:
		return cfg.RadiusMedium
	case Small:
		return cfg.RadiusSmall
	default:
		panic(fmt.Sprintf("object: unknown obstacle class %d", int(s)))
	}
}

// Score returns the points awarded for destroying an obstacle of class s.
func Score(cfg config.ObstacleConfig, s SizeClass) int {
	switch s {
	case Large:
		return cfg.ScoreLarge
	case Medium:
		return cfg.ScoreMedium
	case Small:
		return cfg.ScoreSmall
	default:
		return 0
	}
}

// Vertex is one corner of an obstacle outline in polar form, relative to the
// obstacle's center and rotation.
type Vertex struct {
	Angle float64
	Mag   float64
}

// Obstacle is a drifting rock with a jagged outline.
type Obstacle struct {
	Pos      physics.Vec2
	Vel      physics.Vec2
	Spin     float64   // Angular velocity (radians/sec)
	Rotation float64   // Current rotation offset
	Class    SizeClass // Size category
	Radius   float64   // Collision radius
	Dead     bool      // Marked for removal at the end of the frame

	vertices []Vertex // Fixed outline, generated once
}

// NewObstacle creates an obstacle of the given class at pos heading in a
// random direction at base speed times a variance factor.
func NewObstacle(cfg config.ObstacleConfig, r *rand.Rand, pos physics.Vec2, class SizeClass) *Obstacle {
	angle := r.Float64() * 2 * math.Pi
	speed := cfg.BaseSpeed * randRange(r, 1, cfg.Variance)
	return NewObstacleWithVelocity(cfg, r, pos, physics.FromAngle(angle, speed), class)
}

// NewObstacleWithVelocity creates an obstacle with a fresh randomized outline
// and radius, moving at vel.
func NewObstacleWithVelocity(cfg config.ObstacleConfig, r *rand.Rand, pos, vel physics.Vec2, class SizeClass) *Obstacle {
	if cfg.Vertices < 3 {
		panic(fmt.Sprintf("object: obstacle needs at least 3 vertices, got %d", cfg.Vertices))
	}

	nominal := NominalRadius(cfg, class)
	radius := randRange(r, nominal*(1-cfg.RadiusJitter), nominal*(1+cfg.RadiusJitter))
	if cfg.RadiusJitter == 0 {
		radius = nominal
	}

	n := cfg.Vertices
	vertices := make([]Vertex, n)
	for i := range vertices {
		vertices[i] = Vertex{
			Angle: float64(i) / float64(n) * 2 * math.Pi,
			Mag:   radius * (1 - cfg.Jaggedness + r.Float64()*cfg.Jaggedness),
		}
	}

	return &Obstacle{
		Pos:      pos,
		Vel:      vel,
		Spin:     randRange(r, -cfg.MaxSpin, cfg.MaxSpin),
		Rotation: r.Float64() * 2 * math.Pi,
		Class:    class,
		Radius:   radius,
		vertices: vertices,
	}
}

// Vertices returns a copy of the outline in local polar form.
func (o *Obstacle) Vertices() []Vertex {
	return append([]Vertex(nil), o.vertices...)
}

// Polygon appends the outline in world space to dst and returns it.
// Pass a reused buffer to avoid per-frame allocations.
func (o *Obstacle) Polygon(dst []physics.Vec2) []physics.Vec2 {
	dst = dst[:0]
	for _, v := range o.vertices {
		dst = append(dst, o.Pos.Add(physics.FromAngle(v.Angle+o.Rotation, v.Mag)))
	}
	return dst
}

// Update moves and spins the obstacle. Obstacles keep a constant velocity.
func (o *Obstacle) Update(ctx StepContext) {
	o.Pos = ctx.Bounds.Wrap(o.Pos.Add(o.Vel.Scale(ctx.Dt)))
	o.Rotation += o.Spin * ctx.Dt
}
