// Package config loads the simulation tuning from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidRange is returned by Validate for any misconfigured bound.
var ErrInvalidRange = errors.New("invalid config range")

// Config holds every tunable of the simulation and its host.
type Config struct {
	// Host
	ListenAddr  string `env:"DRIFT_LISTEN_ADDR"  envDefault:":8080"`
	JournalPath string `env:"DRIFT_JOURNAL_PATH" envDefault:"data/drift.db"`
	GameID      string `env:"DRIFT_GAME_ID"      envDefault:"GAME_1"`
	Seed        int64  `env:"DRIFT_SEED"` // 0 means seed from crypto/rand
	PlayerName  string `env:"DRIFT_PLAYER_NAME"`

	// Clock
	TickInterval time.Duration `env:"DRIFT_TICK_INTERVAL"  envDefault:"1s"`
	HoursPerTick float64       `env:"DRIFT_HOURS_PER_TICK" envDefault:"0.5"`

	// Party
	TeamCapacity int     `env:"DRIFT_TEAM_CAPACITY" envDefault:"4"`
	WalkingSpeed float64 `env:"DRIFT_WALKING_SPEED" envDefault:"70"`
	RidingMin    int     `env:"DRIFT_RIDING_SPEED_MIN" envDefault:"100"`
	RidingMax    int     `env:"DRIFT_RIDING_SPEED_MAX" envDefault:"150"`
	AgeMin       int     `env:"DRIFT_AGE_MIN" envDefault:"16"`
	AgeMax       int     `env:"DRIFT_AGE_MAX" envDefault:"60"`
	AttributeMin int     `env:"DRIFT_ATTRIBUTE_MIN" envDefault:"1"`
	AttributeMax int     `env:"DRIFT_ATTRIBUTE_MAX" envDefault:"10"`
	ItemCountMin int     `env:"DRIFT_ITEM_COUNT_MIN" envDefault:"1"`
	ItemCountMax int     `env:"DRIFT_ITEM_COUNT_MAX" envDefault:"5"`

	// Passersby
	MaxPassersby          int           `env:"DRIFT_MAX_PASSERSBY"          envDefault:"3"`
	AppearanceProbability float64       `env:"DRIFT_PASSERBY_PROBABILITY"   envDefault:"0.2"`
	PasserbyMinDuration   time.Duration `env:"DRIFT_PASSERBY_MIN_DURATION" envDefault:"10s"`
	PasserbyMaxDuration   time.Duration `env:"DRIFT_PASSERBY_MAX_DURATION" envDefault:"30s"`

	// Vitals, per tick
	SatietyDecay    float64 `env:"DRIFT_SATIETY_DECAY"    envDefault:"1.5"`
	HydrationDecay  float64 `env:"DRIFT_HYDRATION_DECAY"  envDefault:"2"`
	StaminaDecay    float64 `env:"DRIFT_STAMINA_DECAY"    envDefault:"1"`
	MoodDecay       float64 `env:"DRIFT_MOOD_DECAY"       envDefault:"0.5"`
	StaminaRecovery float64 `env:"DRIFT_STAMINA_RECOVERY" envDefault:"5"`
	MoodRecovery    float64 `env:"DRIFT_MOOD_RECOVERY"    envDefault:"2.5"`

	// Supplies, per member and game day on the road
	RationsPerMember    int     `env:"DRIFT_RATIONS_PER_MEMBER"     envDefault:"1"`
	ShortageMoodPenalty float64 `env:"DRIFT_SHORTAGE_MOOD_PENALTY" envDefault:"10"`
}

// Default returns the built-in tuning, identical to the envDefault tags.
func Default() Config {
	return Config{
		ListenAddr:            ":8080",
		JournalPath:           "data/drift.db",
		GameID:                "GAME_1",
		TickInterval:          time.Second,
		HoursPerTick:          0.5,
		TeamCapacity:          4,
		WalkingSpeed:          70,
		RidingMin:             100,
		RidingMax:             150,
		AgeMin:                16,
		AgeMax:                60,
		AttributeMin:          1,
		AttributeMax:          10,
		ItemCountMin:          1,
		ItemCountMax:          5,
		MaxPassersby:          3,
		AppearanceProbability: 0.2,
		PasserbyMinDuration:   10 * time.Second,
		PasserbyMaxDuration:   30 * time.Second,
		SatietyDecay:          1.5,
		HydrationDecay:        2,
		StaminaDecay:          1,
		MoodDecay:             0.5,
		StaminaRecovery:       5,
		MoodRecovery:          2.5,
		RationsPerMember:      1,
		ShortageMoodPenalty:   10,
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate guards every range the simulation samples from.
func (c Config) Validate() error {
	intRanges := []struct {
		name     string
		min, max int
	}{
		{"riding speed", c.RidingMin, c.RidingMax},
		{"age", c.AgeMin, c.AgeMax},
		{"attribute", c.AttributeMin, c.AttributeMax},
		{"item count", c.ItemCountMin, c.ItemCountMax},
	}
	for _, r := range intRanges {
		if r.min > r.max {
			return fmt.Errorf("%s: min %d > max %d: %w", r.name, r.min, r.max, ErrInvalidRange)
		}
	}
	if c.AttributeMin < 1 || c.AttributeMax > 10 {
		return fmt.Errorf("attribute bounds must lie in [1,10]: %w", ErrInvalidRange)
	}
	if c.PasserbyMinDuration <= 0 || c.PasserbyMinDuration > c.PasserbyMaxDuration {
		return fmt.Errorf("passerby duration: min %s, max %s: %w", c.PasserbyMinDuration, c.PasserbyMaxDuration, ErrInvalidRange)
	}
	if c.AppearanceProbability < 0 || c.AppearanceProbability > 1 {
		return fmt.Errorf("passerby probability %v outside [0,1]: %w", c.AppearanceProbability, ErrInvalidRange)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval %s: %w", c.TickInterval, ErrInvalidRange)
	}
	if c.RationsPerMember < 0 {
		return fmt.Errorf("rations per member %d: %w", c.RationsPerMember, ErrInvalidRange)
	}
	if c.TeamCapacity < 1 || c.MaxPassersby < 0 {
		return fmt.Errorf("team capacity %d, max passersby %d: %w", c.TeamCapacity, c.MaxPassersby, ErrInvalidRange)
	}
	for _, rate := range []float64{c.SatietyDecay, c.HydrationDecay, c.StaminaDecay, c.MoodDecay, c.StaminaRecovery, c.MoodRecovery, c.WalkingSpeed, c.HoursPerTick, c.ShortageMoodPenalty} {
		if rate < 0 {
			return fmt.Errorf("negative rate %v: %w", rate, ErrInvalidRange)
		}
	}
	return nil
}
