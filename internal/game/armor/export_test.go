package armor

// SetDurability overwrites the remaining durability so tests can reach
// depleted states without replaying every hit.
func (l *Leather) SetDurability(n int)   { l.dur.current = n }
func (p *Plate) SetDurability(n int)     { p.dur.current = n }
func (e *Enchanted) SetDurability(n int) { e.dur.current = n }

// SetMana overwrites the current mana without clamping.
func (m *MagicShield) SetMana(n int) { m.mana = n }
