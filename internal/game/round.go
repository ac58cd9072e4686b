// Package game owns a round of play: the state machine, the fixed order of
// per-tick work, collision resolution and obstacle spawning.
package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/highscore"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// Round is the single authoritative record of one session's play.
// It is not safe for concurrent use; one goroutine drives Tick.
type Round struct {
	cfg    config.Config
	bounds object.Bounds
	rng    *rand.Rand
	store  highscore.Store
	log    zerolog.Logger
	base   zerolog.Logger
	obs    Observer

	id       uuid.UUID
	state    GameState
	lastTick time.Time

	score     int
	lives     int
	level     int
	highScore int

	craft       *object.Craft
	obstacles   []*object.Obstacle
	projectiles []*object.Projectile
	particles   []*object.Particle

	spawned   spawnQueue
	fragments []*object.Obstacle

	director *Director
	grid     *physics.SpatialGrid[object.Handle]
	polyBuf  []physics.Vec2
}

// HUD is the scoreboard shown alongside the playfield.
type HUD struct {
	State     GameState
	Score     int
	Lives     int
	Level     int
	HighScore int
}

// Option configures a Round.
type Option func(*Round)

// WithRand sets the random source. Tests use a seeded source for
// reproducible rounds.
func WithRand(rng *rand.Rand) Option {
	return func(r *Round) { r.rng = rng }
}

// WithStore sets where the high score is loaded from and saved to.
func WithStore(s highscore.Store) Option {
	return func(r *Round) { r.store = s }
}

// WithLogger sets the base logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Round) { r.base = l }
}

// WithObserver registers an event observer.
func WithObserver(o Observer) Option {
	return func(r *Round) { r.obs = o }
}

// NewRound validates cfg and returns a round waiting on the menu.
func NewRound(cfg config.Config, opts ...Option) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Round{
		cfg:    cfg,
		bounds: object.BoundsFrom(cfg.World),
		store:  highscore.NewMemoryStore(),
		base:   zerolog.Nop(),
		obs:    NopObserver{},
		state:  StateMenu,
		lives:  cfg.Game.StartLives,
		level:  1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	r.log = r.base

	m := cfg.World.Margin
	r.grid = physics.NewSpatialGrid[object.Handle](-m, -m, cfg.World.Width+m, cfg.World.Height+m, cfg.Grid.CellSize)
	r.director = NewDirector(cfg.Obstacle, r.bounds, r.rng)
	r.craft = object.NewCraft(r.bounds.Center(), cfg.Ship.Radius)
	r.highScore = r.loadHighScore()

	return r, nil
}

// Start begins a fresh round at now: score, lives and level are reset,
// leftover entities are discarded and the opening wave is placed.
func (r *Round) Start(now time.Time) {
	r.id = uuid.New()
	r.log = r.base.With().Str("round", r.id.String()).Logger()

	r.score = 0
	r.lives = r.cfg.Game.StartLives
	r.level = 1
	r.highScore = r.loadHighScore()

	r.clearEntities()
	r.craft.Respawn(r.bounds.Center(), now.Add(r.cfg.Ship.Invulnerable))
	r.obstacles = append(r.obstacles, r.director.Seed(r.cfg.Game.InitialWave)...)
	r.director.Reset(now)

	r.lastTick = now
	r.state = StatePlaying
	r.obs.RoundStarted()

	r.log.Info().
		Int("lives", r.lives).
		Int("obstacles", len(r.obstacles)).
		Int("highScore", r.highScore).
		Msg("round started")
}

// TogglePause switches between PLAYING and PAUSED. It has no effect in
// other states.
func (r *Round) TogglePause(now time.Time) {
	switch r.state {
	case StatePlaying:
		r.state = StatePaused
		r.log.Debug().Msg("paused")
	case StatePaused:
		r.state = StatePlaying
		r.lastTick = now
		r.log.Debug().Msg("resumed")
	}
}

// Tick applies one frame of input at now. State transitions act on the
// presses in in.Pressed; the simulation only advances while PLAYING.
func (r *Round) Tick(now time.Time, in input.Frame) {
	switch r.state {
	case StateMenu, StateGameOver:
		if in.Pressed.Confirm {
			r.Start(now)
		}
	case StatePaused:
		if in.Pressed.Pause {
			r.TogglePause(now)
		}
	case StatePlaying:
		if in.Pressed.Pause {
			r.TogglePause(now)
			return
		}
		r.step(now, in)
	}
}

// ID identifies the current round. It is the zero UUID before the first Start.
func (r *Round) ID() uuid.UUID { return r.id }

func (r *Round) State() GameState { return r.state }
func (r *Round) Score() int       { return r.score }
func (r *Round) Lives() int       { return r.lives }
func (r *Round) Level() int       { return r.level }

// HighScore is the best of the persisted score and the current one.
func (r *Round) HighScore() int {
	return max(r.highScore, r.score)
}

// Config returns the tuning the round was built with.
func (r *Round) Config() config.Config { return r.cfg }

// Bounds returns the playfield extent.
func (r *Round) Bounds() object.Bounds { return r.bounds }

// Craft returns the player's ship. Callers must not modify it.
func (r *Round) Craft() *object.Craft { return r.craft }

// Obstacles returns the live obstacles. The slice is reused between ticks.
func (r *Round) Obstacles() []*object.Obstacle { return r.obstacles }

// Projectiles returns the live projectiles. The slice is reused between ticks.
func (r *Round) Projectiles() []*object.Projectile { return r.projectiles }

// Particles returns the live particles. The slice is reused between ticks.
func (r *Round) Particles() []*object.Particle { return r.particles }

// HUD returns the scoreboard.
func (r *Round) HUD() HUD {
	return HUD{
		State:     r.state,
		Score:     r.score,
		Lives:     r.lives,
		Level:     r.level,
		HighScore: r.HighScore(),
	}
}

func (r *Round) loadHighScore() int {
	score, err := r.store.Load()
	if err != nil {
		r.log.Error().Err(err).Msg("failed to load high score")
		return r.highScore
	}
	return score
}

// saveHighScore compares against the stored value, which rounds sharing the
// store may have raised since Start.
func (r *Round) saveHighScore() {
	r.highScore = r.loadHighScore()
	if r.score <= r.highScore {
		return
	}
	r.highScore = r.score
	if err := r.store.Save(r.score); err != nil {
		r.log.Error().Err(err).Int("score", r.score).Msg("failed to save high score")
		return
	}
	r.log.Info().Int("score", r.score).Msg("new high score")
}

func (r *Round) clearEntities() {
	for _, p := range r.particles {
		p.Release()
	}
	clear(r.obstacles)
	clear(r.projectiles)
	clear(r.particles)
	r.obstacles = r.obstacles[:0]
	r.projectiles = r.projectiles[:0]
	r.particles = r.particles[:0]
	r.fragments = r.fragments[:0]
	r.spawned.reset()
}

// spawnQueue collects entities created while collections are being
// iterated. They join their collections at fixed points in the tick.
type spawnQueue struct {
	particles   []*object.Particle
	projectiles []*object.Projectile
}

func (q *spawnQueue) SpawnParticle(p *object.Particle)     { q.particles = append(q.particles, p) }
func (q *spawnQueue) SpawnProjectile(p *object.Projectile) { q.projectiles = append(q.projectiles, p) }

func (q *spawnQueue) reset() {
	for _, p := range q.particles {
		p.Release()
	}
	q.particles = q.particles[:0]
	q.projectiles = q.projectiles[:0]
}

var _ object.Spawner = (*spawnQueue)(nil)
