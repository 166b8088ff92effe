package arcade

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("arcade: invalid config")

// Config holds the tuning values of a game. Zero fields in a loaded file keep
// the defaults.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Seed makes a game reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`

	Ship   ShipConfig   `yaml:"ship"`
	Laser  LaserConfig  `yaml:"laser"`
	Rocks  RockConfig   `yaml:"asteroids"`
	UFO    UFOConfig    `yaml:"ufo"`
	Drop   DropConfig   `yaml:"drop"`
	Timing TimingConfig `yaml:"timing"`
	Log    LogConfig    `yaml:"log"`
}

// ShipConfig tunes the player's ship.
type ShipConfig struct {
	Thrust      float64 `yaml:"thrust"`
	Yaw         float64 `yaml:"yaw"` // degrees per second squared
	MaxVelocity float64 `yaml:"max_velocity"`
	MaxSpin     float64 `yaml:"max_spin"` // degrees per second
	FireRate    float64 `yaml:"fire_rate"`
	Compensator *bool   `yaml:"rotation_compensator"`
}

// LaserConfig tunes player and alien lasers.
type LaserConfig struct {
	Lifetime      float64 `yaml:"lifetime"`
	Decay         float64 `yaml:"decay"`
	AlienLifetime float64 `yaml:"alien_lifetime"`
	AlienDecay    float64 `yaml:"alien_decay"`
	AlienSpeed    float64 `yaml:"alien_speed"`
}

// RockConfig tunes asteroids.
type RockConfig struct {
	BaseSpeed  float64 `yaml:"base_speed"`
	SmallBonus float64 `yaml:"small_bonus"`
	LevelBonus float64 `yaml:"level_bonus"`
}

// UFOConfig tunes the alien saucer.
type UFOConfig struct {
	Enabled  *bool   `yaml:"enabled"`
	Hull     float64 `yaml:"hull"`
	FireWait float64 `yaml:"fire_wait"` // seconds before the first shot
	FireRate float64 `yaml:"fire_interval"`
}

// DropConfig tunes energy and repair drops.
type DropConfig struct {
	Lifetime float64 `yaml:"lifetime"`
	Decay    float64 `yaml:"decay"`
}

// TimingConfig holds the delays between game phases, in seconds.
type TimingConfig struct {
	LevelDelay float64 `yaml:"level_delay"`
	OverDelay  float64 `yaml:"game_over_delay"`
}

// LogConfig selects the logger built by NewLogger.
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// DefaultConfig returns the classic tuning.
func DefaultConfig() Config {
	on := true
	ufo := true
	return Config{
		Width:  800,
		Height: 600,
		Ship: ShipConfig{
			Thrust:      250,
			Yaw:         400,
			MaxVelocity: 200,
			MaxSpin:     200,
			FireRate:    4,
			Compensator: &on,
		},
		Laser: LaserConfig{
			Lifetime:      0.75,
			Decay:         0.2,
			AlienLifetime: 2,
			AlienDecay:    0.5,
			AlienSpeed:    100,
		},
		Rocks: RockConfig{
			BaseSpeed:  25,
			SmallBonus: 50,
			LevelBonus: 2,
		},
		UFO: UFOConfig{
			Enabled:  &ufo,
			Hull:     300,
			FireWait: 3,
			FireRate: 2,
		},
		Drop: DropConfig{
			Lifetime: 15,
			Decay:    0.5,
		},
		Timing: TimingConfig{
			LevelDelay: 5,
			OverDelay:  5,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// LoadConfig decodes YAML from r over DefaultConfig and validates the result.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads the YAML config at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate reports the first out-of-range value wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"width", c.Width > 0},
		{"height", c.Height > 0},
		{"ship.thrust", c.Ship.Thrust >= 0},
		{"ship.yaw", c.Ship.Yaw >= 0},
		{"ship.max_velocity", c.Ship.MaxVelocity > 0},
		{"ship.max_spin", c.Ship.MaxSpin > 0},
		{"ship.fire_rate", c.Ship.FireRate > 0},
		{"laser.lifetime", c.Laser.Lifetime > 0},
		{"laser.alien_lifetime", c.Laser.AlienLifetime > 0},
		{"laser.decay", c.Laser.Decay >= 0 && c.Laser.AlienDecay >= 0},
		{"ufo.hull", c.UFO.Hull > 0},
		{"ufo.fire_interval", c.UFO.FireRate > 0},
		{"drop.lifetime", c.Drop.Lifetime > 0},
		{"drop.decay", c.Drop.Decay >= 0},
		{"timing", c.Timing.LevelDelay >= 0 && c.Timing.OverDelay >= 0},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s out of range", ErrInvalidConfig, ch.name)
		}
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	return nil
}

// compensator reports whether the ship auto-stops its spin when not yawing.
func (c Config) compensator() bool {
	return c.Ship.Compensator == nil || *c.Ship.Compensator
}

// ufoEnabled reports whether saucers may spawn.
func (c Config) ufoEnabled() bool {
	return c.UFO.Enabled == nil || *c.UFO.Enabled
}

// NewLogger builds a zap logger writing to stderr. It must not be used for a
// tcell program, which owns the terminal.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	if cfg.Encoding == "console" {
		encoderCfg = zap.NewDevelopmentEncoderConfig()
	}
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
