package game

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/game/mocks"
	storemocks "github.com/tomz197/rockfall/internal/highscore/mocks"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const frame = 16 * time.Millisecond

func newTestRound(t *testing.T, opts ...Option) *Round {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	r, err := NewRound(config.Default(), opts...)
	require.NoError(t, err)
	return r
}

// playing starts r at epoch and empties the field so a test can place
// its own obstacles.
func playing(t *testing.T, r *Round) {
	t.Helper()
	r.Start(epoch)
	require.Equal(t, StatePlaying, r.State())
	r.obstacles = r.obstacles[:0]
}

func staticObstacle(r *Round, pos physics.Vec2, class object.SizeClass) *object.Obstacle {
	o := object.NewObstacleWithVelocity(r.cfg.Obstacle, r.rng, pos, physics.Vec2{}, class)
	o.Spin = 0
	r.obstacles = append(r.obstacles, o)
	return o
}

func pressed(e input.Edges) input.Frame {
	return input.Frame{Pressed: e}
}

func TestNewRound_StartsInMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockStore(ctrl)
	store.EXPECT().Load().Return(70, nil)

	r := newTestRound(t, WithStore(store))

	assert.Equal(t, StateMenu, r.State())
	assert.Equal(t, HUD{State: StateMenu, Lives: 3, Level: 1, HighScore: 70}, r.HUD())
	assert.Empty(t, r.Obstacles())
	assert.Equal(t, r.Bounds().Center(), r.Craft().Pos)
}

func TestNewRound_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.CellSize = 0

	_, err := NewRound(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cellSize")
}

func TestNewRound_LoadFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockStore(ctrl)
	store.EXPECT().Load().Return(0, errors.New("disk on fire"))

	r := newTestRound(t, WithStore(store))
	assert.Zero(t, r.HighScore())
}

func TestTick_ConfirmStartsRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().RoundStarted()

	r := newTestRound(t, WithObserver(obs))
	r.Tick(epoch, pressed(input.Edges{Confirm: true}))

	require.Equal(t, StatePlaying, r.State())
	assert.Equal(t, 3, r.Lives())
	assert.Equal(t, 1, r.Level())
	assert.Zero(t, r.Score())
	assert.NotEqual(t, uuid.Nil, r.ID())

	c := r.Craft()
	assert.Equal(t, r.Bounds().Center(), c.Pos)
	assert.True(t, c.Invulnerable(epoch.Add(time.Second)))
	assert.False(t, c.Invulnerable(epoch.Add(2*time.Second)))

	b := r.Bounds()
	require.Len(t, r.Obstacles(), 4)
	for _, o := range r.Obstacles() {
		assert.Equal(t, object.Large, o.Class)
		onEdge := o.Pos.X == -b.Margin || o.Pos.X == b.Width+b.Margin ||
			o.Pos.Y == -b.Margin || o.Pos.Y == b.Height+b.Margin
		assert.True(t, onEdge, "obstacle at %v is not past an edge", o.Pos)
	}
}

func TestTick_HeldConfirmDoesNotStart(t *testing.T) {
	r := newTestRound(t)
	r.Tick(epoch, input.Frame{Intent: input.Intent{Confirm: true}})
	assert.Equal(t, StateMenu, r.State())
}

func TestTick_PauseFreezesSimulation(t *testing.T) {
	r := newTestRound(t)
	r.Start(epoch)

	before := make([]physics.Vec2, 0, len(r.Obstacles()))
	for _, o := range r.Obstacles() {
		before = append(before, o.Pos)
	}

	r.Tick(epoch.Add(frame), pressed(input.Edges{Pause: true}))
	require.Equal(t, StatePaused, r.State())

	// Held or not, nothing moves until the next pause press.
	r.Tick(epoch.Add(time.Second), input.Frame{Intent: input.Intent{Pause: true, Thrust: true}})
	r.Tick(epoch.Add(2*time.Second), pressed(input.Edges{Confirm: true, Fire: true}))
	assert.Equal(t, StatePaused, r.State())
	for i, o := range r.Obstacles() {
		assert.Equal(t, before[i], o.Pos)
	}
	assert.Empty(t, r.Projectiles())

	resume := epoch.Add(3 * time.Second)
	r.Tick(resume, pressed(input.Edges{Pause: true}))
	require.Equal(t, StatePlaying, r.State())
	assert.Equal(t, resume, r.lastTick)

	r.Tick(resume.Add(frame), input.Frame{})
	for i := range before {
		assert.NotEqual(t, before[i], r.Obstacles()[i].Pos)
	}
}

func TestTick_ClampsFrameDelta(t *testing.T) {
	r := newTestRound(t)
	playing(t, r)
	o := staticObstacle(r, physics.V(400, 100), object.Large)
	o.Vel = physics.V(100, 0)

	r.Tick(epoch.Add(time.Second), input.Frame{})
	assert.InDelta(t, 400+100*r.cfg.World.MaxFrameDelta.Seconds(), o.Pos.X, 1e-9)

	// A clock that steps backwards does not move anything.
	r.Tick(epoch, input.Frame{})
	assert.InDelta(t, 400+100*r.cfg.World.MaxFrameDelta.Seconds(), o.Pos.X, 1e-9)
}

func TestTick_FireOnPressOnly(t *testing.T) {
	r := newTestRound(t)
	playing(t, r)
	staticObstacle(r, physics.V(100, 600), object.Large)

	r.Tick(epoch.Add(frame), input.Frame{
		Intent:  input.Intent{Fire: true},
		Pressed: input.Edges{Fire: true},
	})
	require.Len(t, r.Projectiles(), 1)

	r.Tick(epoch.Add(time.Second), input.Frame{Intent: input.Intent{Fire: true}})
	assert.Len(t, r.Projectiles(), 1)
}

func TestTick_ExpiredParticlesArePurged(t *testing.T) {
	r := newTestRound(t)
	playing(t, r)
	staticObstacle(r, physics.V(100, 600), object.Large)
	r.particles = append(r.particles, object.NewParticle(physics.V(10, 10), physics.Vec2{}, 50*time.Millisecond, object.ParticleExplosion))

	r.Tick(epoch.Add(33*time.Millisecond), input.Frame{})
	assert.Len(t, r.Particles(), 1)
	r.Tick(epoch.Add(66*time.Millisecond), input.Frame{})
	assert.Empty(t, r.Particles())
}

func TestStart_ResetsAfterGameOver(t *testing.T) {
	r := newTestRound(t)
	playing(t, r)
	r.score = 500
	r.level = 4
	r.lives = 1
	r.craft.InvulnerableUntil = time.Time{}
	staticObstacle(r, r.craft.Pos, object.Large)
	r.projectiles = append(r.projectiles, object.NewProjectile(physics.V(900, 600), physics.Vec2{}, 2.5, time.Second))

	now := epoch.Add(frame)
	r.Tick(now, input.Frame{})
	require.Equal(t, StateGameOver, r.State())
	assert.Equal(t, 500, r.HighScore())

	restart := now.Add(time.Second)
	r.Tick(restart, pressed(input.Edges{Confirm: true}))
	require.Equal(t, StatePlaying, r.State())
	assert.Zero(t, r.Score())
	assert.Equal(t, 3, r.Lives())
	assert.Equal(t, 1, r.Level())
	assert.Equal(t, 500, r.HighScore())
	assert.Len(t, r.Obstacles(), 4)
	assert.Empty(t, r.Projectiles())
	assert.Empty(t, r.Particles())
	assert.True(t, r.Craft().Invulnerable(restart))
}

func TestGameOver_FreezesSimulation(t *testing.T) {
	r := newTestRound(t)
	playing(t, r)
	r.lives = 1
	r.craft.InvulnerableUntil = time.Time{}
	o := staticObstacle(r, r.craft.Pos, object.Large)
	o.Vel = physics.V(50, 0)

	r.Tick(epoch.Add(frame), input.Frame{})
	require.Equal(t, StateGameOver, r.State())
	pos := o.Pos

	r.Tick(epoch.Add(time.Second), pressed(input.Edges{Pause: true}))
	assert.Equal(t, StateGameOver, r.State())
	assert.Equal(t, pos, o.Pos)
}

func TestHUD_HighScoreTracksCurrentScore(t *testing.T) {
	r := newTestRound(t)
	r.highScore = 100
	r.score = 40
	assert.Equal(t, 100, r.HUD().HighScore)
	r.score = 140
	assert.Equal(t, 140, r.HUD().HighScore)
}
