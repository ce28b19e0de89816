package armor

const (
	plateDurability = 200
	plateWear       = 2
	plateAbsorbPct  = 50
)

// Plate is heavy armor absorbing 50% of incoming damage.
// Durability starts at 200 and drops by 2 per hit, so it lasts as many hits
// as Leather while wearing twice as fast.
type Plate struct {
	defense int
	dur     durability
}

// NewPlate returns plate armor with full durability.
//
// Postcondition: Durability() == 200.
func NewPlate(defense int) *Plate {
	return &Plate{defense: defense, dur: durability{current: plateDurability, perUse: plateWear}}
}

// Defense returns the display-only defense rating.
func (p *Plate) Defense() int { return p.defense }

// Name returns "Plate Armor".
func (p *Plate) Name() string { return "Plate Armor" }

// Durability returns the remaining durability.
func (p *Plate) Durability() int { return p.dur.current }

// AbsorbDamage absorbs 50% of incoming while durability remains.
//
// Postcondition: durability decremented by 2 (floor 0) unless already 0.
func (p *Plate) AbsorbDamage(incoming int) int {
	incoming = clampIncoming(incoming)
	if p.dur.exhausted() {
		return incoming
	}
	p.dur.wear()
	return passThrough(incoming, plateAbsorbPct)
}
