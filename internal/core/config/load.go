package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err = Decode(f, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg. Keys missing from the document keep
// their current values.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// overrides holds the handful of knobs worth setting from the environment.
// Nil means unset.
type overrides struct {
	Seed      *string  `env:"WILDCATCH_SEED"`
	LogLevel  *string  `env:"WILDCATCH_LOG_LEVEL"`
	LogFormat *string  `env:"WILDCATCH_LOG_FORMAT"`
	MaxStep   *float64 `env:"WILDCATCH_MAX_STEP"`
	FixedStep *float64 `env:"WILDCATCH_FIXED_STEP"`

	SpawnInterval *float64 `env:"WILDCATCH_SPAWN_INTERVAL"`
	MaxCreatures  *int     `env:"WILDCATCH_MAX_CREATURES"`
	MinSpacing    *float64 `env:"WILDCATCH_MIN_SPACING"`

	DetectionRadius *float64 `env:"WILDCATCH_DETECTION_RADIUS"`
	ZoneRadius      *float64 `env:"WILDCATCH_ZONE_RADIUS"`
	GroundHeight    *float64 `env:"WILDCATCH_GROUND_HEIGHT"`

	OpponentEnabled *bool    `env:"WILDCATCH_OPPONENT_ENABLED"`
	OpponentRange   *float64 `env:"WILDCATCH_OPPONENT_RANGE"`

	ViewerEnabled *bool   `env:"WILDCATCH_VIEWER_ENABLED"`
	ViewerAddr    *string `env:"WILDCATCH_VIEWER_ADDR"`
}

// ApplyEnv overlays WILDCATCH_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	set(&cfg.Seed, o.Seed)
	set(&cfg.LogLevel, o.LogLevel)
	set(&cfg.LogFormat, o.LogFormat)
	set(&cfg.MaxStep, o.MaxStep)
	set(&cfg.FixedStep, o.FixedStep)
	set(&cfg.Spawn.Interval, o.SpawnInterval)
	set(&cfg.Spawn.MaxCreatures, o.MaxCreatures)
	set(&cfg.Spawn.MinSpacing, o.MinSpacing)
	set(&cfg.Player.DetectionRadius, o.DetectionRadius)
	set(&cfg.Spawn.ZoneRadius, o.ZoneRadius)
	set(&cfg.Projectile.GroundHeight, o.GroundHeight)
	set(&cfg.Opponent.Enabled, o.OpponentEnabled)
	set(&cfg.Opponent.Range, o.OpponentRange)
	set(&cfg.Viewer.Enabled, o.ViewerEnabled)
	set(&cfg.Viewer.Addr, o.ViewerAddr)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.MaxStep >= 0, "max_step must be >= 0, got %v", c.MaxStep)
	check(c.FixedStep >= 0, "fixed_step must be >= 0, got %v", c.FixedStep)
	check(c.World.Bound() > 0, "world bound must be positive, got %v", c.World.Bound())

	check(c.Player.MaxHealth > 0, "player.max_health must be positive")
	check(c.Player.StartDevices >= 0, "player.start_devices must be >= 0")
	check(c.Player.DetectionRadius >= 0, "player.detection_radius must be >= 0")

	check(c.Spawn.Interval >= 0, "spawn.interval must be >= 0")
	check(c.Spawn.MaxCreatures >= 0, "spawn.max_creatures must be >= 0")
	check(c.Spawn.MaxAttempts > 0, "spawn.max_attempts must be positive")
	check(c.Spawn.MinRadius >= 0 && c.Spawn.MaxRadius >= c.Spawn.MinRadius,
		"spawn radii must satisfy 0 <= min_radius <= max_radius, got [%v, %v]", c.Spawn.MinRadius, c.Spawn.MaxRadius)
	check(c.Spawn.ZoneRadius >= 0, "spawn.zone_radius must be >= 0")

	check(c.Projectile.PlayerSpeed >= 0 && c.Projectile.OpponentSpeed >= 0, "projectile speeds must be >= 0")
	check(c.Projectile.DamageMin >= 0 && c.Projectile.DamageMax >= c.Projectile.DamageMin,
		"projectile damage range must satisfy 0 <= min <= max, got [%d, %d]", c.Projectile.DamageMin, c.Projectile.DamageMax)

	check(c.Capture.MaxProbability >= 0 && c.Capture.MaxProbability <= 1, "capture.max_probability must be in [0, 1]")
	check(c.Capture.BonusEvery >= 0, "capture.bonus_every must be >= 0")

	if c.Opponent.Enabled {
		check(c.Opponent.MaxHealth > 0, "opponent.max_health must be positive")
		check(c.Opponent.TurnPeriod >= 0 && c.Opponent.Cooldown >= 0, "opponent timers must be >= 0")
	}

	check(len(c.Species) > 0, "at least one species is required")
	for i, s := range c.Species {
		check(s.Name != "", "species %d: name is required", i)
		check(s.CatchRate >= 0 && s.CatchRate <= 1, "species %q: catch_rate must be in [0, 1]", s.Name)
		check(s.MaxHealth > 0, "species %q: max_health must be positive", s.Name)
		check(s.Size >= 0, "species %q: size must be >= 0", s.Name)
	}
	check(len(c.Devices) > 0, "at least one capture device is required")
	for i, d := range c.Devices {
		check(d.Name != "", "device %d: name is required", i)
		check(d.Bonus >= 0 && d.Bonus <= 1, "device %q: bonus must be in [0, 1]", d.Name)
		check(d.Cost >= 0, "device %q: cost must be >= 0", d.Name)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
