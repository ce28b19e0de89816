package armor

// DefaultMana is the mana pool a MagicShield starts with when none is given.
const DefaultMana = 100

// Absorption bounds for MagicShield, in percent.
const (
	magicMinPct = 30
	magicMaxPct = 70
)

// MagicShield absorbs between 30% and 70% of incoming damage, scaling
// linearly with the fraction of mana remaining. Absorbing costs half the
// absorbed amount in mana.
//
// Invariant: 0 <= mana <= maxMana.
type MagicShield struct {
	defense int
	mana    int
	maxMana int
}

// NewMagicShield returns a shield with mana as both its current and maximum pool.
// Negative mana is treated as zero, producing a shield that never absorbs.
//
// Postcondition: Mana() == MaxMana() == max(0, mana).
func NewMagicShield(defense, mana int) *MagicShield {
	mana = max(0, mana)
	return &MagicShield{defense: defense, mana: mana, maxMana: mana}
}

// Defense returns the display-only defense rating.
func (m *MagicShield) Defense() int { return m.defense }

// Name returns "Magic Shield".
func (m *MagicShield) Name() string { return "Magic Shield" }

// Mana returns the current mana.
func (m *MagicShield) Mana() int { return m.mana }

// MaxMana returns the mana ceiling.
func (m *MagicShield) MaxMana() int { return m.maxMana }

// AbsorbPercent returns the absorption rate at the current mana level as a
// percentage: 30 + 40*mana/maxMana, clamped to [30, 70].
func (m *MagicShield) AbsorbPercent() float64 {
	if m.maxMana <= 0 {
		return magicMinPct
	}
	pct := magicMinPct + float64(m.mana)/float64(m.maxMana)*(magicMaxPct-magicMinPct)
	return min(magicMaxPct, max(magicMinPct, pct))
}

// AbsorbDamage absorbs floor(incoming * rate) and spends min(mana, absorbed/2) mana.
// At zero mana nothing is absorbed and nothing is spent.
func (m *MagicShield) AbsorbDamage(incoming int) int {
	incoming = clampIncoming(incoming)
	if m.mana <= 0 || m.maxMana <= 0 {
		return incoming
	}
	// Exact rational form of floor(incoming * (0.3 + 0.4*mana/maxMana)).
	num := incoming * (magicMinPct*m.maxMana + (magicMaxPct-magicMinPct)*m.mana)
	absorbed := min(incoming, num/(100*m.maxMana))
	m.mana -= min(m.mana, absorbed/2)
	return max(0, incoming-absorbed)
}

// RechargeMana adds amount to the pool, never exceeding MaxMana.
// Negative amounts are ignored.
func (m *MagicShield) RechargeMana(amount int) {
	if amount <= 0 {
		return
	}
	m.mana = min(m.maxMana, m.mana+amount)
}
