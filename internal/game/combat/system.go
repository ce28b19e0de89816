package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/damage"
	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// Recorder receives one observation per Attack call.
// observability.CombatMetrics satisfies it.
type Recorder interface {
	ObserveAttack(success bool, weapon string, damage, absorbed int)
}

// System resolves attacks with an injected damage calculator and keeps an
// append-only log of successful attacks in call order.
type System struct {
	calc   damage.Calculator
	logger *zap.Logger
	log    []string

	// Injected after construction. nil = no metrics recorded.
	Metrics Recorder
}

// NewSystem creates a System using calc. The calculator is shared, not owned;
// the same instance may back many systems.
//
// Precondition: calc must be non-nil. A nil logger disables logging.
// Postcondition: CombatLog() is empty.
func NewSystem(calc damage.Calculator, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{calc: calc, logger: logger}
}

// Attack resolves one attack of attacker on defender with weapon.
//
// A dead attacker or dead defender yields Success=false with no state change
// and no log entry. Otherwise the calculator scales the weapon damage, the
// defender takes it through armor, and a log line is appended.
//
// Precondition: attacker, defender, and weapon must be non-nil.
func (s *System) Attack(attacker, defender *Character, weapon inventory.Weapon) AttackResult {
	if !attacker.IsAlive() {
		return s.reject(fmt.Sprintf("%s is dead and cannot attack", attacker.Name), weapon)
	}
	if !defender.IsAlive() {
		return s.reject(fmt.Sprintf("%s is already dead", defender.Name), weapon)
	}

	raw := s.calc.Calculate(weapon.Damage(), attacker.Level, defender.Level)
	actual := defender.TakeDamage(raw)

	entry := fmt.Sprintf("%s (Lvl %d) attacked %s (Lvl %d) with %s dealing %d damage",
		attacker.Name, attacker.Level, defender.Name, defender.Level, weapon.Name(), actual)
	s.log = append(s.log, entry)

	absorbed := max(0, raw-actual)
	s.logger.Debug("attack resolved",
		zap.String("attacker_id", attacker.ID),
		zap.String("defender_id", defender.ID),
		zap.String("weapon", weapon.Name()),
		zap.Int("raw_damage", raw),
		zap.Int("damage", actual),
		zap.Int("absorbed", absorbed),
		zap.Int("defender_health", defender.CurrentHealth()),
	)
	if s.Metrics != nil {
		s.Metrics.ObserveAttack(true, weapon.Name(), actual, absorbed)
	}

	return AttackResult{
		Success:        true,
		Attacker:       attacker.Name,
		Defender:       defender.Name,
		Weapon:         weapon.Name(),
		RawDamage:      raw,
		Damage:         actual,
		Absorbed:       absorbed,
		DefenderHealth: defender.CurrentHealth(),
		DefenderAlive:  defender.IsAlive(),
		Message:        entry,
	}
}

func (s *System) reject(msg string, weapon inventory.Weapon) AttackResult {
	s.logger.Debug("attack rejected", zap.String("reason", msg))
	if s.Metrics != nil {
		s.Metrics.ObserveAttack(false, weapon.Name(), 0, 0)
	}
	return failed(msg)
}

// CombatLog returns a copy of the log in chronological order.
//
// Postcondition: mutating the returned slice does not affect the System.
func (s *System) CombatLog() []string {
	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// ClearLog empties the log. Later attacks append to the empty log.
func (s *System) ClearLog() {
	s.log = nil
}
