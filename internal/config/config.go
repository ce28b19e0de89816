// Package config provides Viper-based configuration loading for the skirmish CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Calculator names accepted by combat.calculator.
const (
	CalculatorStandard = "standard"
	CalculatorCritical = "critical"
	CalculatorScripted = "scripted"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CombatConfig selects and tunes the damage calculator.
type CombatConfig struct {
	// Calculator is one of "standard", "critical", "scripted".
	Calculator string `mapstructure:"calculator"`
	// CritMultiplier scales damage on a critical hit; <= 0 uses the default.
	CritMultiplier float64 `mapstructure:"crit_multiplier"`
	// Script is the Lua file used by the scripted calculator.
	Script string `mapstructure:"script"`
	// InstructionLimit caps Lua opcodes per evaluation; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
	// Seed makes randomness reproducible; 0 uses crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// MaxTurns bounds a duel; 0 means until one side dies.
	MaxTurns int `mapstructure:"max_turns"`
}

// ContentConfig locates the YAML content directories.
type ContentConfig struct {
	WeaponsDir string `mapstructure:"weapons_dir"`
	ArmorDir   string `mapstructure:"armor_dir"`
}

// MetricsConfig controls Prometheus collection.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Content ContentConfig `mapstructure:"content"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	switch c.Calculator {
	case CalculatorStandard, CalculatorCritical:
	case CalculatorScripted:
		if c.Script == "" {
			errs = append(errs, "combat.script must not be empty when combat.calculator is scripted")
		}
	default:
		errs = append(errs, fmt.Sprintf("combat.calculator must be one of [standard, critical, scripted], got %q", c.Calculator))
	}
	if c.CritMultiplier < 0 {
		errs = append(errs, fmt.Sprintf("combat.crit_multiplier must be >= 0, got %v", c.CritMultiplier))
	}
	if c.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("combat.instruction_limit must be >= 0, got %d", c.InstructionLimit))
	}
	if c.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("combat.max_turns must be >= 0, got %d", c.MaxTurns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.ArmorDir == "" {
		errs = append(errs, "content.armor_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and SKIRMISH_ environment
// overrides applied, ready for flag binding or file reading.
func NewViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("combat.calculator", CalculatorStandard)
	v.SetDefault("combat.crit_multiplier", 2.0)
	v.SetDefault("combat.script", "content/scripts/damage.lua")
	v.SetDefault("combat.instruction_limit", 0)
	v.SetDefault("combat.seed", 0)
	v.SetDefault("combat.max_turns", 0)

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.armor_dir", "content/armor")

	v.SetDefault("metrics.enabled", true)
}
