package armor

const (
	leatherDurability = 100
	leatherWear       = 1
	leatherAbsorbPct  = 20
)

// Leather is light armor absorbing 20% of incoming damage.
// Durability starts at 100 and drops by 1 per hit.
type Leather struct {
	defense int
	dur     durability
}

// NewLeather returns leather armor with full durability.
//
// Postcondition: Durability() == 100.
func NewLeather(defense int) *Leather {
	return &Leather{defense: defense, dur: durability{current: leatherDurability, perUse: leatherWear}}
}

// Defense returns the display-only defense rating.
func (l *Leather) Defense() int { return l.defense }

// Name returns "Leather Armor".
func (l *Leather) Name() string { return "Leather Armor" }

// Durability returns the remaining durability.
func (l *Leather) Durability() int { return l.dur.current }

// AbsorbDamage absorbs 20% of incoming while durability remains.
//
// Postcondition: durability decremented by 1 (floor 0) unless already 0.
func (l *Leather) AbsorbDamage(incoming int) int {
	incoming = clampIncoming(incoming)
	if l.dur.exhausted() {
		return incoming
	}
	l.dur.wear()
	return passThrough(incoming, leatherAbsorbPct)
}
