// Package armor implements the absorption strategies a character can wear.
//
// Each variant owns a resource (durability or mana) that is consumed on
// every AbsorbDamage call. When the resource is exhausted the armor becomes
// a pass-through: the full incoming damage is returned.
package armor

import "github.com/cory-johannsen/skirmish/internal/game/dice"

// Armor is the capability set shared by every armor variant.
type Armor interface {
	// Defense returns the display-only defense rating.
	Defense() int
	// Name returns the human-readable armor name.
	Name() string
	// AbsorbDamage mutates the armor's resource and returns the damage that
	// passes through to the wearer.
	//
	// Postcondition: 0 <= result <= max(0, incoming).
	AbsorbDamage(incoming int) int
}

// Source is the subset of dice.Source used by probabilistic armor.
type Source = dice.Uniform

// Default defense ratings per variant.
const (
	DefaultLeatherDefense   = 10
	DefaultPlateDefense     = 30
	DefaultMagicDefense     = 20
	DefaultEnchantedDefense = 25
	DefaultDummyDefense     = 5
)

// passThrough returns incoming minus the floored percentage absorbed.
//
// Precondition: incoming >= 0; 0 <= percent <= 100.
// Postcondition: 0 <= result <= incoming.
func passThrough(incoming, percent int) int {
	absorbed := incoming * percent / 100
	return max(0, incoming-absorbed)
}

// clampIncoming treats negative damage as zero.
func clampIncoming(incoming int) int {
	if incoming < 0 {
		return 0
	}
	return incoming
}

// durability is the depleting resource shared by Leather, Plate, and Enchanted.
//
// Invariant: 0 <= current; current never increases.
type durability struct {
	current int
	perUse  int
}

func (d *durability) exhausted() bool { return d.current <= 0 }

func (d *durability) wear() {
	d.current = max(0, d.current-d.perUse)
}
