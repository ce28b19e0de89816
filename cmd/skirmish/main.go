// Package main provides the skirmish binary, which loads weapon and armor
// content, pits two characters against each other until one falls, and logs
// the combat log.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/damage"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
	"github.com/cory-johannsen/skirmish/internal/observability"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// fighter describes one side of the duel as given on the command line.
type fighter struct {
	Name     string
	Level    int
	Health   int
	WeaponID string
	// ArmorID is empty for no armor.
	ArmorID string
}

// duelOutcome is what run reports back to main.
type duelOutcome struct {
	Results []combat.AttackResult
	Log     []string
	Winner  string
	Summary *observability.CombatSummary
}

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	weaponsDir := flag.String("weapons-dir", "", "path to weapon YAML definitions directory (overrides content.weapons_dir)")
	armorDir := flag.String("armor-dir", "", "path to armor YAML definitions directory (overrides content.armor_dir)")
	attackerName := flag.String("attacker", "Hero", "attacker name")
	defenderName := flag.String("defender", "Goblin", "defender name")
	attackerLevel := flag.Int("attacker-level", 5, "attacker level")
	defenderLevel := flag.Int("defender-level", 3, "defender level")
	health := flag.Int("health", 100, "max health of both characters")
	weaponID := flag.String("weapon", "sword", "attacker weapon ID")
	defenderWeaponID := flag.String("defender-weapon", "bow", "defender weapon ID")
	armorID := flag.String("armor", "plate", "defender armor ID; empty = none")
	attackerArmorID := flag.String("attacker-armor", "", "attacker armor ID; empty = none")
	maxTurns := flag.Int("max-turns", 0, "maximum attacks in the duel (overrides combat.max_turns); 0 = until death or stalemate")
	list := flag.Bool("list", false, "log the available weapon and armor IDs and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *weaponsDir != "" {
		cfg.Content.WeaponsDir = *weaponsDir
	}
	if *armorDir != "" {
		cfg.Content.ArmorDir = *armorDir
	}
	if *maxTurns > 0 {
		cfg.Combat.MaxTurns = *maxTurns
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if *list {
		registry, err := loadRegistry(cfg.Content, logger)
		if err != nil {
			logger.Fatal("loading content", zap.Error(err))
		}
		weapons, armors := contentIDs(registry)
		logger.Info("available content",
			zap.Strings("weapons", weapons),
			zap.Strings("armors", armors),
		)
		return
	}

	attacker := fighter{Name: *attackerName, Level: *attackerLevel, Health: *health, WeaponID: *weaponID, ArmorID: *attackerArmorID}
	defender := fighter{Name: *defenderName, Level: *defenderLevel, Health: *health, WeaponID: *defenderWeaponID, ArmorID: *armorID}

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
	}

	out, err := run(cfg, attacker, defender, logger, reg)
	if err != nil {
		logger.Error("skirmish failed", zap.Error(err))
		os.Exit(1)
	}

	for _, line := range out.Log {
		logger.Info(line)
	}
	fields := []zap.Field{
		zap.Int("attacks", len(out.Results)),
		zap.String("winner", out.Winner),
		zap.Duration("elapsed", time.Since(start)),
	}
	if out.Summary != nil {
		fields = append(fields,
			zap.Float64("damage_dealt", out.Summary.DamageDealt),
			zap.Float64("damage_absorbed", out.Summary.DamageAbsorbed),
			zap.Float64("avg_hit", out.Summary.AverageHitValue),
		)
	}
	logger.Info("skirmish complete", fields...)
}

// run loads content, builds both characters and the calculator, and duels
// them. A nil reg disables metrics.
//
// Postcondition: Returns the outcome or the first setup error.
func run(cfg config.Config, a, d fighter, logger *zap.Logger, reg *prometheus.Registry) (*duelOutcome, error) {
	logger = logger.With(observability.CombatFields(cfg.Combat)...)

	registry, err := loadRegistry(cfg.Content, logger)
	if err != nil {
		return nil, err
	}

	src := newSource(cfg.Combat.Seed, logger)
	calc, err := buildCalculator(cfg.Combat, src, logger)
	if err != nil {
		return nil, err
	}

	first, err := newSide(registry, a, src)
	if err != nil {
		return nil, err
	}
	second, err := newSide(registry, d, src)
	if err != nil {
		return nil, err
	}

	sys := combat.NewSystem(calc, logger)
	if reg != nil {
		sys.Metrics = observability.NewCombatMetrics(reg)
	}

	logger.Info("duel starting",
		zap.String("attacker", first.Character.Name),
		zap.String("attacker_weapon", first.Weapon.Name()),
		zap.String("defender", second.Character.Name),
		zap.String("defender_weapon", second.Weapon.Name()),
	)
	results := sys.Duel(first, second, cfg.Combat.MaxTurns)

	out := &duelOutcome{Results: results, Log: sys.CombatLog()}
	if w := combat.Winner(first.Character, second.Character); w != nil {
		out.Winner = w.Name
	}
	if reg != nil {
		if out.Summary, err = observability.Summarize(reg); err != nil {
			return nil, fmt.Errorf("gathering metrics: %w", err)
		}
	}
	return out, nil
}

// loadRegistry loads all weapon and armor definitions into a Registry.
func loadRegistry(cfg config.ContentConfig, logger *zap.Logger) (*inventory.Registry, error) {
	weapons, err := inventory.LoadWeapons(cfg.WeaponsDir)
	if err != nil {
		return nil, fmt.Errorf("loading weapons: %w", err)
	}
	armors, err := inventory.LoadArmors(cfg.ArmorDir)
	if err != nil {
		return nil, fmt.Errorf("loading armor: %w", err)
	}

	registry := inventory.NewRegistry()
	for _, w := range weapons {
		if err := registry.RegisterWeapon(w); err != nil {
			return nil, err
		}
	}
	for _, a := range armors {
		if err := registry.RegisterArmor(a); err != nil {
			return nil, err
		}
	}
	weaponIDs, armorIDs := contentIDs(registry)
	logger.Info("content loaded",
		zap.Strings("weapons", weaponIDs),
		zap.Strings("armors", armorIDs),
	)
	return registry, nil
}

// contentIDs returns the registered weapon and armor IDs in sorted order.
func contentIDs(registry *inventory.Registry) (weapons, armors []string) {
	for _, w := range registry.AllWeapons() {
		weapons = append(weapons, w.ID)
	}
	for _, a := range registry.AllArmors() {
		armors = append(armors, a.ID)
	}
	return weapons, armors
}

// newSource returns a seeded source when seed != 0 and crypto randomness
// otherwise, wrapped so every draw is debug-logged.
func newSource(seed int64, logger *zap.Logger) dice.Source {
	var src dice.Source
	if seed != 0 {
		src = dice.NewSeededSource(seed)
	} else {
		src = dice.NewCryptoSource()
	}
	return dice.NewLoggedSource(src, logger)
}

// buildCalculator constructs the damage calculator named by cfg.Calculator.
func buildCalculator(cfg config.CombatConfig, src dice.Source, logger *zap.Logger) (damage.Calculator, error) {
	switch cfg.Calculator {
	case config.CalculatorStandard:
		return damage.NewStandard(), nil
	case config.CalculatorCritical:
		return damage.NewCritical(cfg.CritMultiplier, src), nil
	case config.CalculatorScripted:
		calc, err := scripting.LoadCalculator(cfg.Script, cfg.InstructionLimit, logger)
		if err != nil {
			return nil, err
		}
		calc.Dice = src
		return calc, nil
	default:
		return nil, fmt.Errorf("unknown calculator %q", cfg.Calculator)
	}
}

var errUnknownContent = errors.New("unknown content ID")

// newSide builds a character and resolves its weapon and armor from the registry.
func newSide(registry *inventory.Registry, f fighter, src dice.Source) (combat.Side, error) {
	wdef, ok := registry.Weapon(f.WeaponID)
	if !ok {
		return combat.Side{}, fmt.Errorf("%w: weapon %q", errUnknownContent, f.WeaponID)
	}

	var c *combat.Character
	var err error
	if f.ArmorID == "" {
		c, err = combat.NewCharacter(f.Name, f.Health, f.Level, nil)
	} else {
		adef, ok := registry.Armor(f.ArmorID)
		if !ok {
			return combat.Side{}, fmt.Errorf("%w: armor %q", errUnknownContent, f.ArmorID)
		}
		c, err = combat.NewCharacter(f.Name, f.Health, f.Level, adef.New(src))
	}
	if err != nil {
		return combat.Side{}, fmt.Errorf("creating %q: %w", f.Name, err)
	}
	return combat.Side{Character: c, Weapon: wdef.New()}, nil
}
