package armor

// DefaultDummyRate is the absorption rate of a Dummy created without one.
const DefaultDummyRate = 0.1

// Dummy absorbs a fixed fraction of every hit and counts how often it was hit.
// It has no resource and never wears out.
type Dummy struct {
	defense int
	rate    float64
	hits    int
}

// NewDummy returns a Dummy absorbing rate of incoming damage.
// rate is clamped to [0, 1].
func NewDummy(defense int, rate float64) *Dummy {
	return &Dummy{defense: defense, rate: min(1, max(0, rate))}
}

// Defense returns the display-only defense rating.
func (d *Dummy) Defense() int { return d.defense }

// Name returns "Dummy Armor".
func (d *Dummy) Name() string { return "Dummy Armor" }

// Rate returns the fixed absorption rate.
func (d *Dummy) Rate() float64 { return d.rate }

// DamageReceivedCount returns the number of AbsorbDamage calls, zero-damage calls included.
func (d *Dummy) DamageReceivedCount() int { return d.hits }

// AbsorbDamage returns incoming - floor(incoming * rate).
func (d *Dummy) AbsorbDamage(incoming int) int {
	d.hits++
	incoming = clampIncoming(incoming)
	absorbed := int(float64(incoming) * d.rate)
	return max(0, incoming-absorbed)
}
