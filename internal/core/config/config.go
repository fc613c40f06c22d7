// Package config holds every tunable the simulation reads. Values start from
// Default, are overlaid by an optional YAML file and then by WILDCATCH_*
// environment variables.
package config

import (
	"github.com/zeusync/wildcatch/internal/core/models"
	"github.com/zeusync/wildcatch/internal/core/systems/physics"
)

type Config struct {
	// Seed feeds the random source. Empty means seed from the clock.
	Seed      string `yaml:"seed"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// MaxStep clamps dt when > 0. Zero keeps dt unbounded.
	MaxStep float64 `yaml:"max_step"`
	// FixedStep switches Advance to a fixed-step accumulator when > 0.
	FixedStep float64 `yaml:"fixed_step"`

	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Capture    CaptureConfig    `yaml:"capture"`
	Opponent   OpponentConfig   `yaml:"opponent"`
	Messages   MessageConfig    `yaml:"messages"`
	Viewer     ViewerConfig     `yaml:"viewer"`

	Species []models.Species `yaml:"species"`
	Devices []models.Device  `yaml:"devices"`
}

type WorldConfig struct {
	// GridLength is the half-extent of the square play area.
	GridLength float64 `yaml:"grid_length"`
	// BoundsMargin keeps walkers this far inside the edge.
	BoundsMargin float64 `yaml:"bounds_margin"`
}

// Bound is the largest |x| or |y| a walker may reach.
func (w WorldConfig) Bound() float64 { return w.GridLength - w.BoundsMargin }

type PlayerConfig struct {
	Start           physics.Vec3 `yaml:"start"`
	MaxHealth       int          `yaml:"max_health"`
	StartDevices    int          `yaml:"start_devices"`
	Speed           float64      `yaml:"speed"`
	DetectionRadius float64      `yaml:"detection_radius"`
	GroundHeight    float64      `yaml:"ground_height"`
	JumpImpulse     float64      `yaml:"jump_impulse"`
	Gravity         float64      `yaml:"gravity"`
	Hitbox          float64      `yaml:"hitbox"`
	AimAssistRange  float64      `yaml:"aim_assist_range"`
}

type SpawnConfig struct {
	Interval     float64 `yaml:"interval"`
	MaxCreatures int     `yaml:"max_creatures"`
	MinSpacing   float64 `yaml:"min_spacing"`
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	MaxAttempts  int     `yaml:"max_attempts"`
	Height       float64 `yaml:"height"`
	ZoneRadius   float64 `yaml:"zone_radius"`
}

type ProjectileConfig struct {
	PlayerSpeed    float64 `yaml:"player_speed"`
	OpponentSpeed  float64 `yaml:"opponent_speed"`
	GroundHeight   float64 `yaml:"ground_height"`
	CapturePadding float64 `yaml:"capture_padding"`
	DamagePadding  float64 `yaml:"damage_padding"`
	DamageMin      int     `yaml:"damage_min"`
	DamageMax      int     `yaml:"damage_max"`
}

type CaptureConfig struct {
	MaxProbability float64 `yaml:"max_probability"`
	HealthWeight   float64 `yaml:"health_weight"`
	FailDamage     int     `yaml:"fail_damage"`

	Experience     int `yaml:"experience"`
	Currency       int `yaml:"currency"`
	RareExperience int `yaml:"rare_experience"`
	RareCurrency   int `yaml:"rare_currency"`
	DeviceReward   int `yaml:"device_reward"`

	FailExperience int `yaml:"fail_experience"`
	FailCurrency   int `yaml:"fail_currency"`

	// BonusEvery grants one bonus device per this many captures. Zero disables it.
	BonusEvery int `yaml:"bonus_every"`
}

type OpponentConfig struct {
	Enabled     bool         `yaml:"enabled"`
	Start       physics.Vec3 `yaml:"start"`
	MaxHealth   int          `yaml:"max_health"`
	Devices     int          `yaml:"devices"`
	Speed       float64      `yaml:"speed"`
	TurnPeriod  float64      `yaml:"turn_period"`
	Cooldown    float64      `yaml:"cooldown"`
	Range       float64      `yaml:"range"`
	Hitbox      float64      `yaml:"hitbox"`
	ThrowHeight float64      `yaml:"throw_height"`
	HitDamage   int          `yaml:"hit_damage"`
	HealOnHit   int          `yaml:"heal_on_hit"`
}

// MessageConfig holds how long event messages stay on screen, in seconds.
type MessageConfig struct {
	Hit     float64 `yaml:"hit"`
	Special float64 `yaml:"special"`
	Outcome float64 `yaml:"outcome"`
}

type ViewerConfig struct {
	Enabled bool    `yaml:"enabled"`
	Addr    string  `yaml:"addr"`
	Rate    float64 `yaml:"rate"`
}

// Default returns the stock game tuning.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "json",
		World: WorldConfig{
			GridLength:   600,
			BoundsMargin: 50,
		},
		Player: PlayerConfig{
			Start:           physics.V3(0, 0, 30),
			MaxHealth:       100,
			StartDevices:    10,
			Speed:           5,
			DetectionRadius: 100,
			GroundHeight:    30,
			JumpImpulse:     18,
			Gravity:         40,
			Hitbox:          15,
			AimAssistRange:  150,
		},
		Spawn: SpawnConfig{
			Interval:     3.0,
			MaxCreatures: 20,
			MinSpacing:   80,
			MinRadius:    100,
			MaxRadius:    300,
			MaxAttempts:  20,
			Height:       20,
			ZoneRadius:   40,
		},
		Projectile: ProjectileConfig{
			PlayerSpeed:    300,
			OpponentSpeed:  200,
			GroundHeight:   5,
			CapturePadding: 8,
			DamagePadding:  10,
			DamageMin:      15,
			DamageMax:      25,
		},
		Capture: CaptureConfig{
			MaxProbability: 0.98,
			HealthWeight:   0.3,
			FailDamage:     10,
			Experience:     10,
			Currency:       5,
			RareExperience: 25,
			RareCurrency:   15,
			DeviceReward:   2,
			FailExperience: 2,
			FailCurrency:   1,
			BonusEvery:     5,
		},
		Opponent: OpponentConfig{
			Enabled:     true,
			Start:       physics.V3(200, 200, 30),
			MaxHealth:   100,
			Devices:     10,
			Speed:       15,
			TurnPeriod:  3.0,
			Cooldown:    2.0,
			Range:       300,
			Hitbox:      20,
			ThrowHeight: 20,
			HitDamage:   20,
			HealOnHit:   20,
		},
		Messages: MessageConfig{
			Hit:     2.5,
			Special: 3.0,
			Outcome: 5.0,
		},
		Viewer: ViewerConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8080",
			Rate:    20,
		},
		Species: models.DefaultSpecies(),
		Devices: models.DefaultDevices(),
	}
}
