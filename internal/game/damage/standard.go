package damage

// Standard scales damage by 10% per level of difference between attacker and defender.
type Standard struct{}

// NewStandard returns the standard level-scaling calculator.
func NewStandard() Standard { return Standard{} }

// Calculate returns max(1, floor(base * (1 + (attackerLevel-defenderLevel)*0.1))).
func (Standard) Calculate(baseDamage, attackerLevel, defenderLevel int) int {
	return floorDamage(float64(baseDamage) * levelMultiplier(attackerLevel, defenderLevel))
}
