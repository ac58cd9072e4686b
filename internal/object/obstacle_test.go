package object

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/physics"
)

func TestNewObstacle_Shape(t *testing.T) {
	cfg := config.Default().Obstacle
	r := rand.New(rand.NewPCG(3, 4))

	for _, class := range []SizeClass{Large, Medium, Small} {
		o := NewObstacle(cfg, r, physics.V(10, 20), class)
		nominal := NominalRadius(cfg, class)

		assert.GreaterOrEqual(t, o.Radius, nominal*0.85)
		assert.LessOrEqual(t, o.Radius, nominal*1.15)

		speed := o.Vel.Len()
		assert.GreaterOrEqual(t, speed, cfg.BaseSpeed)
		assert.LessOrEqual(t, speed, cfg.BaseSpeed*cfg.Variance)

		verts := o.Vertices()
		require.Len(t, verts, cfg.Vertices)
		for i, v := range verts {
			assert.InDelta(t, float64(i)/float64(cfg.Vertices)*2*math.Pi, v.Angle, 1e-9)
			assert.GreaterOrEqual(t, v.Mag, o.Radius*(1-cfg.Jaggedness))
			assert.LessOrEqual(t, v.Mag, o.Radius)
		}
	}
}

func TestNewObstacle_PanicsOnDegenerateOutline(t *testing.T) {
	cfg := config.Default().Obstacle
	cfg.Vertices = 2
	assert.Panics(t, func() {
		NewObstacle(cfg, rand.New(rand.NewPCG(1, 1)), physics.Vec2{}, Large)
	})
}

func TestObstacle_UpdateKeepsOutline(t *testing.T) {
	ctx, _ := newStepContext(t, 0.5)
	o := NewObstacleWithVelocity(ctx.Config.Obstacle, ctx.Rand, physics.V(100, 100), physics.V(10, -4), Medium)
	before := o.Vertices()
	rot := o.Rotation

	o.Update(ctx)

	assert.Equal(t, physics.V(105, 98), o.Pos)
	assert.InDelta(t, rot+o.Spin*0.5, o.Rotation, 1e-12)
	assert.Equal(t, before, o.Vertices())
	assert.Equal(t, physics.V(10, -4), o.Vel, "no friction on obstacles")
}

func TestObstacle_Polygon(t *testing.T) {
	cfg := config.Default().Obstacle
	o := NewObstacle(cfg, rand.New(rand.NewPCG(5, 6)), physics.V(200, 100), Large)

	poly := o.Polygon(nil)
	require.Len(t, poly, cfg.Vertices)
	for i, p := range poly {
		assert.InDelta(t, o.Vertices()[i].Mag, physics.Distance(o.Pos, p), 1e-9)
	}
}

func TestSizeClass_Fragments(t *testing.T) {
	c, n := Large.Fragments()
	assert.Equal(t, Medium, c)
	assert.Equal(t, 2, n)

	c, n = Medium.Fragments()
	assert.Equal(t, Small, c)
	assert.Equal(t, 2, n)

	_, n = Small.Fragments()
	assert.Zero(t, n)
}

func TestScore_SmallerIsWorthMore(t *testing.T) {
	cfg := config.Default().Obstacle
	assert.Less(t, Score(cfg, Large), Score(cfg, Medium))
	assert.Less(t, Score(cfg, Medium), Score(cfg, Small))
}
