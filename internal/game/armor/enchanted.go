package armor

import "github.com/cory-johannsen/skirmish/internal/game/dice"

const (
	enchantedDurability = 150
	enchantedWear       = 1
	reflectAbsorbPct    = 70
	enchantedAbsorbPct  = 35
)

// DefaultReflectChance is the probability that an Enchanted hit is reflected.
const DefaultReflectChance = 0.15

// Enchanted armor absorbs 35% of incoming damage, or 70% when a hit is
// reflected. Each hit draws once from the injected Source and reflects when
// the draw is below the reflect chance.
type Enchanted struct {
	defense       int
	dur           durability
	src           Source
	reflectChance float64
	lastReflected bool
}

// NewEnchanted returns enchanted armor with full durability drawing from src.
//
// Precondition: src must be non-nil.
// Postcondition: Durability() == 150; DidReflect() == false.
func NewEnchanted(defense int, src Source) *Enchanted {
	return &Enchanted{
		defense:       defense,
		dur:           durability{current: enchantedDurability, perUse: enchantedWear},
		src:           src,
		reflectChance: DefaultReflectChance,
	}
}

// Defense returns the display-only defense rating.
func (e *Enchanted) Defense() int { return e.defense }

// Name returns "Enchanted Armor".
func (e *Enchanted) Name() string { return "Enchanted Armor" }

// Durability returns the remaining durability.
func (e *Enchanted) Durability() int { return e.dur.current }

// ReflectChance returns the probability of a reflect outcome per hit.
func (e *Enchanted) ReflectChance() float64 { return e.reflectChance }

// DidReflect reports whether the most recent AbsorbDamage call reflected.
// It is false after a call made with no durability left.
func (e *Enchanted) DidReflect() bool { return e.lastReflected }

// AbsorbDamage draws for reflection and absorbs 70% on a reflect, 35% otherwise.
//
// Postcondition: durability decremented by 1 (floor 0) unless already 0.
func (e *Enchanted) AbsorbDamage(incoming int) int {
	incoming = clampIncoming(incoming)
	if e.dur.exhausted() {
		e.lastReflected = false
		return incoming
	}
	e.lastReflected = dice.Chance(e.src, e.reflectChance)
	e.dur.wear()
	if e.lastReflected {
		return passThrough(incoming, reflectAbsorbPct)
	}
	return passThrough(incoming, enchantedAbsorbPct)
}
