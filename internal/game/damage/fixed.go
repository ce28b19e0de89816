package damage

// DefaultFixedDamage is the damage a Fixed calculator returns when built with zero.
const DefaultFixedDamage = 20

// Fixed returns the same damage for every call and records how it was called.
// It is intended as a deterministic stand-in for tests and scripted scenarios.
type Fixed struct {
	damage int

	calls             int
	lastBase          int
	lastAttackerLevel int
	lastDefenderLevel int
}

// NewFixed returns a Fixed calculator that always returns damage.
func NewFixed(damage int) *Fixed {
	return &Fixed{damage: damage}
}

// Calculate records the arguments and returns the fixed damage unchanged.
func (f *Fixed) Calculate(baseDamage, attackerLevel, defenderLevel int) int {
	f.calls++
	f.lastBase = baseDamage
	f.lastAttackerLevel = attackerLevel
	f.lastDefenderLevel = defenderLevel
	return f.damage
}

// CallCount returns the number of Calculate calls.
func (f *Fixed) CallCount() int { return f.calls }

// LastArgs returns the arguments of the most recent call, all zero before the first.
func (f *Fixed) LastArgs() (baseDamage, attackerLevel, defenderLevel int) {
	return f.lastBase, f.lastAttackerLevel, f.lastDefenderLevel
}
