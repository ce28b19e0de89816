package damage

import "github.com/cory-johannsen/skirmish/internal/game/dice"

// DefaultCritMultiplier is the damage multiplier applied on a critical hit.
const DefaultCritMultiplier = 2.0

// Crit chance bounds.
const (
	minCritChance      = 0.1
	maxCritChance      = 0.3
	critChancePerLevel = 0.05
)

// Critical applies standard level scaling and, on a critical hit, multiplies
// the result by CritMultiplier. Crit chance is 10% plus 5% per level of
// advantage, clamped to [10%, 30%].
type Critical struct {
	multiplier  float64
	src         Source
	lastWasCrit bool
}

// NewCritical returns a Critical calculator drawing from src.
// A multiplier <= 0 selects DefaultCritMultiplier.
//
// Precondition: src must be non-nil.
func NewCritical(multiplier float64, src Source) *Critical {
	if multiplier <= 0 {
		multiplier = DefaultCritMultiplier
	}
	return &Critical{multiplier: multiplier, src: src}
}

// CritMultiplier returns the multiplier applied on a critical hit.
func (c *Critical) CritMultiplier() float64 { return c.multiplier }

// LastWasCritical reports whether the most recent Calculate call was a critical hit.
func (c *Critical) LastWasCritical() bool { return c.lastWasCrit }

// CritChance returns the crit probability for the given levels.
//
// Postcondition: 0.1 <= result <= 0.3.
func CritChance(attackerLevel, defenderLevel int) float64 {
	chance := minCritChance + float64(attackerLevel-defenderLevel)*critChancePerLevel
	return min(maxCritChance, max(minCritChance, chance))
}

// Calculate draws once for a critical hit and returns the scaled damage.
func (c *Critical) Calculate(baseDamage, attackerLevel, defenderLevel int) int {
	c.lastWasCrit = dice.Chance(c.src, CritChance(attackerLevel, defenderLevel))
	mult := levelMultiplier(attackerLevel, defenderLevel)
	if c.lastWasCrit {
		mult *= c.multiplier
	}
	return floorDamage(float64(baseDamage) * mult)
}
