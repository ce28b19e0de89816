// Package inventory provides weapons and the YAML-backed definitions of the
// weapons and armor available to combatants.
package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Weapon is the capability set the combat system needs from a weapon.
type Weapon interface {
	// Damage returns the base damage before level scaling.
	Damage() int
	// Name returns the weapon name used in the combat log.
	Name() string
}

// Default base damage per weapon.
const (
	DefaultSwordDamage       = 50
	DefaultBowDamage         = 40
	DefaultStaffDamage       = 60
	DefaultStaffIntelligence = 10
	DefaultDummyDamage       = 10
)

// Sword is a basic melee weapon.
type Sword struct{ damage int }

// NewSword returns a Sword dealing damage.
func NewSword(damage int) Sword { return Sword{damage: damage} }

// Damage returns the sword's base damage.
func (s Sword) Damage() int { return s.damage }

// Name returns "Sword".
func (s Sword) Name() string { return "Sword" }

// Bow is a basic ranged weapon.
type Bow struct{ damage int }

// NewBow returns a Bow dealing damage.
func NewBow(damage int) Bow { return Bow{damage: damage} }

// Damage returns the bow's base damage.
func (b Bow) Damage() int { return b.damage }

// Name returns "Bow".
func (b Bow) Name() string { return "Bow" }

// MagicStaff adds the wielder's intelligence bonus to its base damage.
type MagicStaff struct {
	damage       int
	intelligence int
}

// NewMagicStaff returns a MagicStaff dealing damage + intelligenceBonus.
func NewMagicStaff(damage, intelligenceBonus int) MagicStaff {
	return MagicStaff{damage: damage, intelligence: intelligenceBonus}
}

// Damage returns base damage plus the intelligence bonus.
func (m MagicStaff) Damage() int { return m.damage + m.intelligence }

// Name returns "Magic Staff".
func (m MagicStaff) Name() string { return "Magic Staff" }

// DummyWeapon is a low-damage weapon for tests and training.
type DummyWeapon struct{ damage int }

// NewDummyWeapon returns a DummyWeapon dealing damage.
func NewDummyWeapon(damage int) DummyWeapon { return DummyWeapon{damage: damage} }

// Damage returns the dummy weapon's base damage.
func (d DummyWeapon) Damage() int { return d.damage }

// Name returns "Dummy Weapon".
func (d DummyWeapon) Name() string { return "Dummy Weapon" }

// WeaponKind selects the weapon implementation a WeaponDef builds.
type WeaponKind string

const (
	WeaponSword      WeaponKind = "sword"
	WeaponBow        WeaponKind = "bow"
	WeaponMagicStaff WeaponKind = "magic_staff"
	WeaponDummy      WeaponKind = "dummy"
)

// WeaponDef defines a weapon loaded from YAML. Zero Damage selects the
// kind's default; a magic_staff with neither damage nor intelligence_bonus
// gets the default staff (60 + 10).
type WeaponDef struct {
	ID                string     `yaml:"id" validate:"required"`
	Kind              WeaponKind `yaml:"kind" validate:"required,oneof=sword bow magic_staff dummy"`
	Damage            int        `yaml:"damage" validate:"min=0"`
	IntelligenceBonus int        `yaml:"intelligence_bonus" validate:"min=0"`
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("weapon validation failed: %w", err)
	}
	if w.Kind != WeaponMagicStaff && w.IntelligenceBonus != 0 {
		return fmt.Errorf("weapon validation failed: intelligence_bonus only applies to %s", WeaponMagicStaff)
	}
	return nil
}

// New builds the Weapon described by the definition.
//
// Precondition: w passed Validate.
func (w *WeaponDef) New() Weapon {
	switch w.Kind {
	case WeaponBow:
		return NewBow(orDefault(w.Damage, DefaultBowDamage))
	case WeaponMagicStaff:
		bonus := w.IntelligenceBonus
		if w.Damage == 0 && bonus == 0 {
			bonus = DefaultStaffIntelligence
		}
		return NewMagicStaff(orDefault(w.Damage, DefaultStaffDamage), bonus)
	case WeaponDummy:
		return NewDummyWeapon(orDefault(w.Damage, DefaultDummyDamage))
	default:
		return NewSword(orDefault(w.Damage, DefaultSwordDamage))
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: %w", err)
	}

	weapons := []*WeaponDef{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}

// yamlFiles lists the .yaml files directly inside dir in lexicographic order.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %q: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
