// Package observability provides logger construction and combat metrics.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/skirmish/internal/config"
)

// ServiceName is attached to every log line as the "service" field.
const ServiceName = "skirmish"

// Fallbacks used when a LoggingConfig is built by hand rather than through
// config.Load; they match the config package defaults.
const (
	defaultLevel  = "info"
	defaultFormat = "json"
)

// NewLogger creates a structured logger from the given logging configuration.
// Empty Level or Format fall back to "info" and "json". opts are applied when
// the logger is built, so tests can redirect output with zap.WrapCore.
//
// Precondition: cfg.Level, when set, must be one of "debug", "info", "warn", "error";
// cfg.Format, when set, must be "json" or "console".
// Postcondition: Returns a logger carrying the service field, or a non-nil error.
func NewLogger(cfg config.LoggingConfig, opts ...zap.Option) (*zap.Logger, error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = defaultLevel
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", levelName, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json", "":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.With(zap.String("service", ServiceName)), nil
}

// CombatFields describes the combat settings a run was made with. The CLI
// attaches them to its logger so every line of a duel can be traced back to
// the calculator and seed that produced it.
func CombatFields(cfg config.CombatConfig) []zap.Field {
	fields := []zap.Field{
		zap.String("calculator", cfg.Calculator),
		zap.Int64("seed", cfg.Seed),
		zap.Int("max_turns", cfg.MaxTurns),
	}
	switch cfg.Calculator {
	case config.CalculatorCritical:
		fields = append(fields, zap.Float64("crit_multiplier", cfg.CritMultiplier))
	case config.CalculatorScripted:
		fields = append(fields, zap.String("script", cfg.Script))
	}
	return fields
}
