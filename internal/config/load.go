package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ROCKFALL_SHIP_ACCEL.
const EnvPrefix = "ROCKFALL"

// Load builds a Config from defaults, an optional config file and environment
// overrides, then validates it. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so that env overrides resolve even when no
// config file mentions them.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("ship.radius", d.Ship.Radius)
	v.SetDefault("ship.accel", d.Ship.Accel)
	v.SetDefault("ship.turnRate", d.Ship.TurnRate)
	v.SetDefault("ship.friction", d.Ship.Friction)
	v.SetDefault("ship.maxSpeed", d.Ship.MaxSpeed)
	v.SetDefault("ship.invulnerable", d.Ship.Invulnerable)
	v.SetDefault("ship.blinkPeriod", d.Ship.BlinkPeriod)
	v.SetDefault("ship.hitboxScale", d.Ship.HitboxScale)
	v.SetDefault("ship.explosionSize", d.Ship.ExplosionSize)

	v.SetDefault("projectile.speed", d.Projectile.Speed)
	v.SetDefault("projectile.radius", d.Projectile.Radius)
	v.SetDefault("projectile.ttl", d.Projectile.TTL)
	v.SetDefault("projectile.cooldown", d.Projectile.Cooldown)
	v.SetDefault("projectile.killMargin", d.Projectile.KillMargin)
	v.SetDefault("projectile.inheritVelocity", d.Projectile.InheritVelocity)

	v.SetDefault("obstacle.baseSpeed", d.Obstacle.BaseSpeed)
	v.SetDefault("obstacle.variance", d.Obstacle.Variance)
	v.SetDefault("obstacle.radiusLarge", d.Obstacle.RadiusLarge)
	v.SetDefault("obstacle.radiusMedium", d.Obstacle.RadiusMedium)
	v.SetDefault("obstacle.radiusSmall", d.Obstacle.RadiusSmall)
	v.SetDefault("obstacle.radiusJitter", d.Obstacle.RadiusJitter)
	v.SetDefault("obstacle.scoreLarge", d.Obstacle.ScoreLarge)
	v.SetDefault("obstacle.scoreMedium", d.Obstacle.ScoreMedium)
	v.SetDefault("obstacle.scoreSmall", d.Obstacle.ScoreSmall)
	v.SetDefault("obstacle.spawnEvery", d.Obstacle.SpawnEvery)
	v.SetDefault("obstacle.jaggedness", d.Obstacle.Jaggedness)
	v.SetDefault("obstacle.vertices", d.Obstacle.Vertices)
	v.SetDefault("obstacle.maxSpin", d.Obstacle.MaxSpin)
	v.SetDefault("obstacle.fragmentSpeedMin", d.Obstacle.FragmentSpeedMin)
	v.SetDefault("obstacle.fragmentSpeedMax", d.Obstacle.FragmentSpeedMax)

	v.SetDefault("particle.explosionMin", d.Particle.ExplosionMin)
	v.SetDefault("particle.explosionMax", d.Particle.ExplosionMax)
	v.SetDefault("particle.explosionSpeedMin", d.Particle.ExplosionSpeedMin)
	v.SetDefault("particle.explosionSpeedMax", d.Particle.ExplosionSpeedMax)
	v.SetDefault("particle.thrustCount", d.Particle.ThrustCount)
	v.SetDefault("particle.thrustSpeedMin", d.Particle.ThrustSpeedMin)
	v.SetDefault("particle.thrustSpeedMax", d.Particle.ThrustSpeedMax)
	v.SetDefault("particle.thrustSpread", d.Particle.ThrustSpread)
	v.SetDefault("particle.ttlMin", d.Particle.TTLMin)
	v.SetDefault("particle.ttlMax", d.Particle.TTLMax)
	v.SetDefault("particle.drag", d.Particle.Drag)

	v.SetDefault("world.width", d.World.Width)
	v.SetDefault("world.height", d.World.Height)
	v.SetDefault("world.margin", d.World.Margin)
	v.SetDefault("world.maxFrameDelta", d.World.MaxFrameDelta)

	v.SetDefault("game.startLives", d.Game.StartLives)
	v.SetDefault("game.initialWave", d.Game.InitialWave)

	v.SetDefault("grid.cellSize", d.Grid.CellSize)
	v.SetDefault("grid.projectileQuery", d.Grid.ProjectileQuery)
	v.SetDefault("grid.craftQuery", d.Grid.CraftQuery)

	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("log.level", d.Log.Level)
}
