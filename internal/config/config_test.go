package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Combat: CombatConfig{
			Calculator:     CalculatorStandard,
			CritMultiplier: 2.0,
			Script:         "content/scripts/damage.lua",
		},
		Content: ContentConfig{
			WeaponsDir: "content/weapons",
			ArmorDir:   "content/armor",
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, CalculatorStandard, cfg.Combat.Calculator)
	assert.Equal(t, 2.0, cfg.Combat.CritMultiplier)
	assert.Equal(t, "content/weapons", cfg.Content.WeaponsDir)
	assert.Equal(t, "content/armor", cfg.Content.ArmorDir)
	assert.Zero(t, cfg.Combat.Seed)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
combat:
  calculator: critical
  crit_multiplier: 3
  seed: 42
  max_turns: 20
content:
  weapons_dir: /tmp/w
  armor_dir: /tmp/a
metrics:
  enabled: false
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, CalculatorCritical, cfg.Combat.Calculator)
	assert.Equal(t, 3.0, cfg.Combat.CritMultiplier)
	assert.Equal(t, int64(42), cfg.Combat.Seed)
	assert.Equal(t, 20, cfg.Combat.MaxTurns)
	assert.Equal(t, "/tmp/w", cfg.Content.WeaponsDir)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SKIRMISH_COMBAT_CALCULATOR", "scripted")
	t.Setenv("SKIRMISH_LOGGING_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, CalculatorScripted, cfg.Combat.Calculator)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("combat:\n  calculator: dice\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "combat.calculator")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateCalculator(t *testing.T) {
	for _, calc := range []string{CalculatorStandard, CalculatorCritical, CalculatorScripted} {
		cfg := validConfig()
		cfg.Combat.Calculator = calc
		assert.NoError(t, cfg.Validate(), "calculator %q should be valid", calc)
	}
	cfg := validConfig()
	cfg.Combat.Calculator = "random"
	assert.Error(t, cfg.Validate())
}

func TestValidateScriptedNeedsScript(t *testing.T) {
	cfg := validConfig()
	cfg.Combat.Calculator = CalculatorScripted
	cfg.Combat.Script = ""
	assert.ErrorContains(t, cfg.Validate(), "combat.script")
}

func TestValidateNegativeCombatValues(t *testing.T) {
	cfg := validConfig()
	cfg.Combat.CritMultiplier = -1
	cfg.Combat.InstructionLimit = -1
	cfg.Combat.MaxTurns = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crit_multiplier")
	assert.Contains(t, err.Error(), "instruction_limit")
	assert.Contains(t, err.Error(), "max_turns")
}

func TestValidateContentDirs(t *testing.T) {
	cfg := validConfig()
	cfg.Content.WeaponsDir = ""
	cfg.Content.ArmorDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weapons_dir")
	assert.Contains(t, err.Error(), "armor_dir")
}

func TestValidateCollectsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Combat.Calculator = "nope"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "combat.calculator")
}

// Property-based tests

func TestPropertyNonNegativeMaxTurnsValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Combat.MaxTurns = rapid.IntRange(0, 1_000_000).Draw(t, "turns")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("max_turns %d should be valid: %v", cfg.Combat.MaxTurns, err)
		}
	})
}

func TestPropertyNegativeInstructionLimitInvalid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Combat.InstructionLimit = rapid.IntRange(-1_000_000, -1).Draw(t, "limit")
		if err := cfg.Validate(); err == nil {
			t.Fatalf("instruction_limit %d should be invalid", cfg.Combat.InstructionLimit)
		}
	})
}
