// Package combat resolves attacks between characters.
//
// The package is single-threaded by contract: a Character and a System carry
// no locks, so a concurrent host must serialize access to each Character and
// to each System (for example with one turn lock per encounter).
package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/armor"
)

// ErrInvalidArgument is returned (wrapped) when a constructor receives an
// out-of-range value.
var ErrInvalidArgument = errors.New("combat: invalid argument")

// Character is a combatant with health, a level, and at most one armor.
//
// Invariant: 0 <= CurrentHealth() <= MaxHealth().
type Character struct {
	// ID uniquely identifies the character; names need not be unique.
	ID    string
	Name  string
	Level int

	maxHealth     int
	currentHealth int
	armor         armor.Armor
}

// NewCharacter returns a character at full health wearing a (nil for none).
//
// Precondition: maxHealth > 0; level >= 0.
// Postcondition: Returns a Character with CurrentHealth() == maxHealth, or an
// error wrapping ErrInvalidArgument.
func NewCharacter(name string, maxHealth, level int, a armor.Armor) (*Character, error) {
	if maxHealth <= 0 {
		return nil, fmt.Errorf("%w: max health must be > 0, got %d", ErrInvalidArgument, maxHealth)
	}
	if level < 0 {
		return nil, fmt.Errorf("%w: level must be >= 0, got %d", ErrInvalidArgument, level)
	}
	return &Character{
		ID:            uuid.NewString(),
		Name:          name,
		Level:         level,
		maxHealth:     maxHealth,
		currentHealth: maxHealth,
		armor:         a,
	}, nil
}

// MaxHealth returns the health ceiling fixed at creation.
func (c *Character) MaxHealth() int { return c.maxHealth }

// CurrentHealth returns the remaining health.
func (c *Character) CurrentHealth() int { return c.currentHealth }

// Armor returns the equipped armor, or nil.
func (c *Character) Armor() armor.Armor { return c.armor }

// IsAlive reports whether CurrentHealth() > 0.
func (c *Character) IsAlive() bool { return c.currentHealth > 0 }

// TakeDamage routes damage through the equipped armor, if any, and subtracts
// what gets through from health. Negative damage is treated as zero.
//
// Postcondition: CurrentHealth() >= 0; returns the damage actually applied.
func (c *Character) TakeDamage(damage int) int {
	actual := max(0, damage)
	if c.armor != nil {
		actual = c.armor.AbsorbDamage(actual)
	}
	c.currentHealth = max(0, c.currentHealth-actual)
	return actual
}

// Heal restores amount health, never exceeding MaxHealth().
// Negative amounts are treated as zero. Dead characters can be healed.
func (c *Character) Heal(amount int) {
	c.currentHealth = min(c.maxHealth, c.currentHealth+max(0, amount))
}

// EquipArmor replaces the current armor; the previous one is discarded.
// Passing nil removes armor.
func (c *Character) EquipArmor(a armor.Armor) {
	c.armor = a
}
