package combat

// AttackResult reports the outcome of one Attack call.
//
// When Success is false only Message is populated.
type AttackResult struct {
	Success  bool
	Attacker string
	Defender string
	Weapon   string
	// RawDamage is the calculator output before armor.
	RawDamage int
	// Damage is the damage actually applied to the defender.
	Damage int
	// Absorbed is RawDamage - Damage.
	Absorbed       int
	DefenderHealth int
	DefenderAlive  bool
	Message        string
}

// failed builds an unsuccessful result carrying only a message.
func failed(msg string) AttackResult {
	return AttackResult{Success: false, Message: msg}
}
