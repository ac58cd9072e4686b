package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds every tunable of the simulation. It is read once at startup
// and treated as constant for the lifetime of the process.
type Config struct {
	Ship       ShipConfig       `mapstructure:"ship"`
	Projectile ProjectileConfig `mapstructure:"projectile"`
	Obstacle   ObstacleConfig   `mapstructure:"obstacle"`
	Particle   ParticleConfig   `mapstructure:"particle"`
	World      WorldConfig      `mapstructure:"world"`
	Game       GameConfig       `mapstructure:"game"`
	Grid       GridConfig       `mapstructure:"grid"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
}

// ShipConfig tunes the player craft.
type ShipConfig struct {
	Radius        float64       `mapstructure:"radius"`
	Accel         float64       `mapstructure:"accel"`    // units/s²
	TurnRate      float64       `mapstructure:"turnRate"` // rad/s
	Friction      float64       `mapstructure:"friction"` // velocity multiplier per tick
	MaxSpeed      float64       `mapstructure:"maxSpeed"`
	Invulnerable  time.Duration `mapstructure:"invulnerable"`
	BlinkPeriod   time.Duration `mapstructure:"blinkPeriod"`
	HitboxScale   float64       `mapstructure:"hitboxScale"` // collision radius = Radius * HitboxScale
	ExplosionSize float64       `mapstructure:"explosionSize"`
}

// ProjectileConfig tunes the craft's weapon.
type ProjectileConfig struct {
	Speed           float64       `mapstructure:"speed"`
	Radius          float64       `mapstructure:"radius"`
	TTL             time.Duration `mapstructure:"ttl"`
	Cooldown        time.Duration `mapstructure:"cooldown"`
	KillMargin      float64       `mapstructure:"killMargin"`
	InheritVelocity float64       `mapstructure:"inheritVelocity"`
}

// ObstacleConfig tunes the drifting rocks.
type ObstacleConfig struct {
	BaseSpeed        float64       `mapstructure:"baseSpeed"`
	Variance         float64       `mapstructure:"variance"`
	RadiusLarge      float64       `mapstructure:"radiusLarge"`
	RadiusMedium     float64       `mapstructure:"radiusMedium"`
	RadiusSmall      float64       `mapstructure:"radiusSmall"`
	RadiusJitter     float64       `mapstructure:"radiusJitter"`
	ScoreLarge       int           `mapstructure:"scoreLarge"`
	ScoreMedium      int           `mapstructure:"scoreMedium"`
	ScoreSmall       int           `mapstructure:"scoreSmall"`
	SpawnEvery       time.Duration `mapstructure:"spawnEvery"`
	Jaggedness       float64       `mapstructure:"jaggedness"`
	Vertices         int           `mapstructure:"vertices"`
	MaxSpin          float64       `mapstructure:"maxSpin"` // rad/s, spin drawn from [-MaxSpin, MaxSpin)
	FragmentSpeedMin float64       `mapstructure:"fragmentSpeedMin"`
	FragmentSpeedMax float64       `mapstructure:"fragmentSpeedMax"`
}

// ParticleConfig tunes cosmetic exhaust and debris.
type ParticleConfig struct {
	ExplosionMin      int           `mapstructure:"explosionMin"`
	ExplosionMax      int           `mapstructure:"explosionMax"`
	ExplosionSpeedMin float64       `mapstructure:"explosionSpeedMin"`
	ExplosionSpeedMax float64       `mapstructure:"explosionSpeedMax"`
	ThrustCount       int           `mapstructure:"thrustCount"`
	ThrustSpeedMin    float64       `mapstructure:"thrustSpeedMin"`
	ThrustSpeedMax    float64       `mapstructure:"thrustSpeedMax"`
	ThrustSpread      float64       `mapstructure:"thrustSpread"` // half-angle of the exhaust cone
	TTLMin            time.Duration `mapstructure:"ttlMin"`
	TTLMax            time.Duration `mapstructure:"ttlMax"`
	Drag              float64       `mapstructure:"drag"`
}

// WorldConfig describes the visible plane.
type WorldConfig struct {
	Width         float64       `mapstructure:"width"`
	Height        float64       `mapstructure:"height"`
	Margin        float64       `mapstructure:"margin"`
	MaxFrameDelta time.Duration `mapstructure:"maxFrameDelta"`
}

// GameConfig holds round rules.
type GameConfig struct {
	StartLives  int `mapstructure:"startLives"`
	InitialWave int `mapstructure:"initialWave"`
}

// GridConfig tunes the broad phase.
type GridConfig struct {
	CellSize        float64 `mapstructure:"cellSize"`
	ProjectileQuery float64 `mapstructure:"projectileQuery"`
	CraftQuery      float64 `mapstructure:"craftQuery"`
}

// StorageConfig selects where the high score lives.
// An empty Path keeps it in memory only.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns the reference tuning.
func Default() Config {
	return Config{
		Ship: ShipConfig{
			Radius:        12,
			Accel:         280,
			TurnRate:      3.4,
			Friction:      0.985,
			MaxSpeed:      420,
			Invulnerable:  2 * time.Second,
			BlinkPeriod:   100 * time.Millisecond,
			HitboxScale:   0.95,
			ExplosionSize: 3,
		},
		Projectile: ProjectileConfig{
			Speed:           720,
			Radius:          2.5,
			TTL:             900 * time.Millisecond,
			Cooldown:        140 * time.Millisecond,
			KillMargin:      50,
			InheritVelocity: 0.15,
		},
		Obstacle: ObstacleConfig{
			BaseSpeed:        60,
			Variance:         1.8,
			RadiusLarge:      48,
			RadiusMedium:     30,
			RadiusSmall:      18,
			RadiusJitter:     0.15,
			ScoreLarge:       20,
			ScoreMedium:      50,
			ScoreSmall:       100,
			SpawnEvery:       1200 * time.Millisecond,
			Jaggedness:       0.4,
			Vertices:         10,
			MaxSpin:          0.6,
			FragmentSpeedMin: 1.2,
			FragmentSpeedMax: 2.0,
		},
		Particle: ParticleConfig{
			ExplosionMin:      20,
			ExplosionMax:      36,
			ExplosionSpeedMin: 40,
			ExplosionSpeedMax: 240,
			ThrustCount:       6,
			ThrustSpeedMin:    60,
			ThrustSpeedMax:    160,
			ThrustSpread:      0.6,
			TTLMin:            250 * time.Millisecond,
			TTLMax:            650 * time.Millisecond,
			Drag:              0.985,
		},
		World: WorldConfig{
			Width:         960,
			Height:        640,
			Margin:        64,
			MaxFrameDelta: time.Second / 30,
		},
		Game: GameConfig{
			StartLives:  3,
			InitialWave: 4,
		},
		Grid: GridConfig{
			CellSize:        96,
			ProjectileQuery: 64,
			CraftQuery:      96,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects configurations the simulation cannot run with.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if !(v > 0 && v <= 1) {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", name, v))
		}
	}
	ordered := func(name string, lo, hi float64) {
		if !(lo < hi) {
			errs = append(errs, fmt.Errorf("%s range is empty: [%v, %v)", name, lo, hi))
		}
	}

	positive("ship.radius", c.Ship.Radius)
	positive("ship.accel", c.Ship.Accel)
	positive("ship.turnRate", c.Ship.TurnRate)
	unit("ship.friction", c.Ship.Friction)
	positive("ship.maxSpeed", c.Ship.MaxSpeed)
	positive("ship.invulnerable", float64(c.Ship.Invulnerable))
	positive("ship.blinkPeriod", float64(c.Ship.BlinkPeriod))
	positive("ship.hitboxScale", c.Ship.HitboxScale)
	positive("ship.explosionSize", c.Ship.ExplosionSize)

	positive("projectile.speed", c.Projectile.Speed)
	positive("projectile.radius", c.Projectile.Radius)
	positive("projectile.ttl", float64(c.Projectile.TTL))
	if c.Projectile.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("projectile.cooldown must not be negative, got %v", c.Projectile.Cooldown))
	}
	if c.Projectile.KillMargin < 0 {
		errs = append(errs, fmt.Errorf("projectile.killMargin must not be negative, got %v", c.Projectile.KillMargin))
	}

	positive("obstacle.baseSpeed", c.Obstacle.BaseSpeed)
	if c.Obstacle.Variance < 1 {
		errs = append(errs, fmt.Errorf("obstacle.variance must be >= 1, got %v", c.Obstacle.Variance))
	}
	positive("obstacle.radiusLarge", c.Obstacle.RadiusLarge)
	positive("obstacle.radiusMedium", c.Obstacle.RadiusMedium)
	positive("obstacle.radiusSmall", c.Obstacle.RadiusSmall)
	if c.Obstacle.RadiusSmall >= c.Obstacle.RadiusMedium || c.Obstacle.RadiusMedium >= c.Obstacle.RadiusLarge {
		errs = append(errs, fmt.Errorf("obstacle radii must satisfy radiusSmall < radiusMedium < radiusLarge, got %v, %v, %v",
			c.Obstacle.RadiusSmall, c.Obstacle.RadiusMedium, c.Obstacle.RadiusLarge))
	}
	if c.Obstacle.RadiusJitter < 0 || c.Obstacle.RadiusJitter >= 1 {
		errs = append(errs, fmt.Errorf("obstacle.radiusJitter must be in [0, 1), got %v", c.Obstacle.RadiusJitter))
	}
	if c.Obstacle.ScoreLarge < 0 || c.Obstacle.ScoreMedium < 0 || c.Obstacle.ScoreSmall < 0 {
		errs = append(errs, errors.New("obstacle scores must not be negative"))
	}
	positive("obstacle.spawnEvery", float64(c.Obstacle.SpawnEvery))
	if c.Obstacle.Jaggedness < 0 || c.Obstacle.Jaggedness >= 1 {
		errs = append(errs, fmt.Errorf("obstacle.jaggedness must be in [0, 1), got %v", c.Obstacle.Jaggedness))
	}
	if c.Obstacle.Vertices < 3 {
		errs = append(errs, fmt.Errorf("obstacle.vertices must be at least 3, got %d", c.Obstacle.Vertices))
	}
	if c.Obstacle.MaxSpin < 0 {
		errs = append(errs, fmt.Errorf("obstacle.maxSpin must not be negative, got %v", c.Obstacle.MaxSpin))
	}
	positive("obstacle.fragmentSpeedMin", c.Obstacle.FragmentSpeedMin)
	ordered("obstacle.fragmentSpeed", c.Obstacle.FragmentSpeedMin, c.Obstacle.FragmentSpeedMax)

	if c.Particle.ExplosionMin < 0 {
		errs = append(errs, fmt.Errorf("particle.explosionMin must not be negative, got %d", c.Particle.ExplosionMin))
	}
	ordered("particle.explosion", float64(c.Particle.ExplosionMin), float64(c.Particle.ExplosionMax))
	ordered("particle.explosionSpeed", c.Particle.ExplosionSpeedMin, c.Particle.ExplosionSpeedMax)
	if c.Particle.ThrustCount < 0 {
		errs = append(errs, fmt.Errorf("particle.thrustCount must not be negative, got %d", c.Particle.ThrustCount))
	}
	ordered("particle.thrustSpeed", c.Particle.ThrustSpeedMin, c.Particle.ThrustSpeedMax)
	positive("particle.ttlMin", float64(c.Particle.TTLMin))
	ordered("particle.ttl", float64(c.Particle.TTLMin), float64(c.Particle.TTLMax))
	unit("particle.drag", c.Particle.Drag)

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	if c.World.Margin < 0 {
		errs = append(errs, fmt.Errorf("world.margin must not be negative, got %v", c.World.Margin))
	}
	positive("world.maxFrameDelta", float64(c.World.MaxFrameDelta))

	if c.Game.StartLives < 1 {
		errs = append(errs, fmt.Errorf("game.startLives must be at least 1, got %d", c.Game.StartLives))
	}
	if c.Game.InitialWave < 0 {
		errs = append(errs, fmt.Errorf("game.initialWave must not be negative, got %d", c.Game.InitialWave))
	}

	positive("grid.cellSize", c.Grid.CellSize)
	positive("grid.projectileQuery", c.Grid.ProjectileQuery)
	positive("grid.craftQuery", c.Grid.CraftQuery)

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
