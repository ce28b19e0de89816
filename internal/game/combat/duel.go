package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/inventory"
)

// Side pairs a character with the weapon it attacks with.
type Side struct {
	Character *Character
	Weapon    inventory.Weapon
}

// stalemateAttacks is one full exchange: both sides attacked once.
const stalemateAttacks = 2

// Duel alternates attacks between first and second, first leading, until one
// character is dead, maxTurns attacks have been made, or a full exchange
// passes in which neither side took damage. maxTurns <= 0 means no turn limit.
//
// Precondition: both sides have non-nil Character and Weapon.
// Postcondition: Returns the successful attacks in order; never contains a
// failed result. Always terminates.
func (s *System) Duel(first, second Side, maxTurns int) []AttackResult {
	var results []AttackResult
	attacker, defender := first, second
	harmless := 0
	for turn := 0; maxTurns <= 0 || turn < maxTurns; turn++ {
		if !attacker.Character.IsAlive() || !defender.Character.IsAlive() {
			break
		}
		res := s.Attack(attacker.Character, defender.Character, attacker.Weapon)
		results = append(results, res)
		if res.Damage > 0 {
			harmless = 0
		} else {
			harmless++
		}
		if harmless >= stalemateAttacks {
			s.logger.Debug("duel stalemate",
				zap.String("first", first.Character.ID),
				zap.String("second", second.Character.ID),
				zap.Int("attacks", len(results)),
			)
			break
		}
		attacker, defender = defender, attacker
	}
	return results
}

// Winner returns the surviving character when exactly one of a and b is
// alive, or nil otherwise.
func Winner(a, b *Character) *Character {
	switch {
	case a.IsAlive() && !b.IsAlive():
		return a
	case b.IsAlive() && !a.IsAlive():
		return b
	default:
		return nil
	}
}
