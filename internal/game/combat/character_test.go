package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/armor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

func newChar(t *testing.T, name string, hp, level int, a armor.Armor) *combat.Character {
	t.Helper()
	c, err := combat.NewCharacter(name, hp, level, a)
	require.NoError(t, err)
	return c
}

func TestNewCharacter_FullHealth(t *testing.T) {
	c := newChar(t, "Hero", 100, 5, nil)
	assert.Equal(t, "Hero", c.Name)
	assert.Equal(t, 5, c.Level)
	assert.Equal(t, 100, c.MaxHealth())
	assert.Equal(t, 100, c.CurrentHealth())
	assert.True(t, c.IsAlive())
	assert.Nil(t, c.Armor())
	assert.NotEmpty(t, c.ID)
}

func TestNewCharacter_UniqueIDs(t *testing.T) {
	a := newChar(t, "Twin", 10, 1, nil)
	b := newChar(t, "Twin", 10, 1, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewCharacter_InvalidArguments(t *testing.T) {
	_, err := combat.NewCharacter("x", 0, 1, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)
	_, err = combat.NewCharacter("x", -5, 1, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)
	_, err = combat.NewCharacter("x", 10, -1, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)
}

func TestTakeDamage_NoArmor(t *testing.T) {
	c := newChar(t, "Hero", 100, 1, nil)
	assert.Equal(t, 30, c.TakeDamage(30))
	assert.Equal(t, 70, c.CurrentHealth())
}

func TestTakeDamage_ThroughArmor(t *testing.T) {
	c := newChar(t, "Hero", 100, 1, armor.NewLeather(armor.DefaultLeatherDefense))
	assert.Equal(t, 40, c.TakeDamage(50))
	assert.Equal(t, 60, c.CurrentHealth())
}

func TestTakeDamage_FloorsAtZero(t *testing.T) {
	c := newChar(t, "Hero", 50, 1, nil)
	assert.Equal(t, 500, c.TakeDamage(500))
	assert.Equal(t, 0, c.CurrentHealth())
	assert.False(t, c.IsAlive())
}

func TestTakeDamage_NegativeIsZero(t *testing.T) {
	c := newChar(t, "Hero", 50, 1, nil)
	assert.Equal(t, 0, c.TakeDamage(-10))
	assert.Equal(t, 50, c.CurrentHealth())
}

func TestHeal_CapsAtMax(t *testing.T) {
	c := newChar(t, "Hero", 100, 1, nil)
	c.TakeDamage(30)
	c.Heal(10)
	assert.Equal(t, 80, c.CurrentHealth())
	c.Heal(1000)
	assert.Equal(t, 100, c.CurrentHealth())
	c.Heal(-20)
	assert.Equal(t, 100, c.CurrentHealth())
}

func TestHeal_RevivesDead(t *testing.T) {
	c := newChar(t, "Hero", 100, 1, nil)
	c.TakeDamage(100)
	require.False(t, c.IsAlive())
	c.Heal(5)
	assert.True(t, c.IsAlive())
	assert.Equal(t, 5, c.CurrentHealth())
}

func TestEquipArmor_Replaces(t *testing.T) {
	leather := armor.NewLeather(armor.DefaultLeatherDefense)
	plate := armor.NewPlate(armor.DefaultPlateDefense)
	c := newChar(t, "Hero", 100, 1, leather)
	c.EquipArmor(plate)
	assert.Same(t, plate, c.Armor())
	c.TakeDamage(10)
	assert.Equal(t, 100, leather.Durability())
	c.EquipArmor(nil)
	assert.Nil(t, c.Armor())
}

func TestCharacter_Property_HealthBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(1, 1000).Draw(rt, "hp")
		c, err := combat.NewCharacter("p", hp, 1, armor.NewMagicShield(armor.DefaultMagicDefense, armor.DefaultMana))
		require.NoError(rt, err)
		ops := rapid.SliceOfN(rapid.IntRange(-200, 200), 1, 100).Draw(rt, "ops")
		for _, v := range ops {
			if v < 0 {
				c.Heal(-v)
			} else {
				got := c.TakeDamage(v)
				assert.LessOrEqual(rt, got, v)
			}
			assert.GreaterOrEqual(rt, c.CurrentHealth(), 0)
			assert.LessOrEqual(rt, c.CurrentHealth(), c.MaxHealth())
			assert.Equal(rt, c.CurrentHealth() > 0, c.IsAlive())
		}
	})
}
