// Package damage provides the level-scaling strategies that turn a weapon's
// base damage into the damage dealt by an attack.
package damage

//go:generate mockgen -destination=mock/mock_calculator.go -package=mockdamage -source=calculator.go

// Calculator scales base weapon damage by attacker and defender level.
type Calculator interface {
	// Calculate returns the damage dealt before armor is applied.
	//
	// Postcondition: production strategies return >= 1.
	Calculate(baseDamage, attackerLevel, defenderLevel int) int
}

// Source is the subset of dice.Source used by probabilistic calculators.
type Source interface {
	Float64() float64
}

// MinDamage is the floor applied by every production calculator.
const MinDamage = 1

// levelMultiplier returns 1 + 0.1 per level of advantage (negative for disadvantage).
func levelMultiplier(attackerLevel, defenderLevel int) float64 {
	return 1 + float64(attackerLevel-defenderLevel)*0.1
}

// floorDamage truncates v toward zero and applies MinDamage.
func floorDamage(v float64) int {
	return max(MinDamage, int(v))
}
