package inventory

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/armor"
)

var validate = validator.New()

// ArmorKind selects the absorption strategy an ArmorDef builds.
type ArmorKind string

const (
	ArmorLeather     ArmorKind = "leather"
	ArmorPlate       ArmorKind = "plate"
	ArmorMagicShield ArmorKind = "magic_shield"
	ArmorEnchanted   ArmorKind = "enchanted"
	ArmorDummy       ArmorKind = "dummy"
)

// ArmorDef defines an armor piece loaded from YAML.
//
// Zero Defense selects the kind's default rating. Mana applies only to
// magic_shield (zero selects armor.DefaultMana); Rate applies only to dummy
// (zero selects armor.DefaultDummyRate) and must be below 1 so the armor
// never absorbs a whole hit.
type ArmorDef struct {
	ID      string    `yaml:"id" validate:"required"`
	Kind    ArmorKind `yaml:"kind" validate:"required,oneof=leather plate magic_shield enchanted dummy"`
	Defense int       `yaml:"defense" validate:"min=0"`
	Mana    int       `yaml:"mana" validate:"min=0"`
	Rate    float64   `yaml:"rate" validate:"min=0,lt=1"`
}

// Validate reports an error if the ArmorDef is missing required fields or contains illegal values.
// Precondition: def is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ArmorDef) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("armor validation failed: %w", err)
	}
	if a.Mana != 0 && a.Kind != ArmorMagicShield {
		return fmt.Errorf("armor validation failed: mana only applies to %s", ArmorMagicShield)
	}
	if a.Rate != 0 && a.Kind != ArmorDummy {
		return fmt.Errorf("armor validation failed: rate only applies to %s", ArmorDummy)
	}
	return nil
}

// New builds a fresh armor instance with a full resource pool. Each call
// returns an independent instance; armor is owned by exactly one character.
//
// Precondition: a passed Validate; src must be non-nil for enchanted armor.
func (a *ArmorDef) New(src armor.Source) armor.Armor {
	switch a.Kind {
	case ArmorPlate:
		return armor.NewPlate(orDefault(a.Defense, armor.DefaultPlateDefense))
	case ArmorMagicShield:
		return armor.NewMagicShield(orDefault(a.Defense, armor.DefaultMagicDefense), orDefault(a.Mana, armor.DefaultMana))
	case ArmorEnchanted:
		return armor.NewEnchanted(orDefault(a.Defense, armor.DefaultEnchantedDefense), src)
	case ArmorDummy:
		rate := a.Rate
		if rate == 0 {
			rate = armor.DefaultDummyRate
		}
		return armor.NewDummy(orDefault(a.Defense, armor.DefaultDummyDefense), rate)
	default:
		return armor.NewLeather(orDefault(a.Defense, armor.DefaultLeatherDefense))
	}
}

// LoadArmors reads all .yaml files in dir and returns parsed ArmorDef slice.
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all returned defs pass Validate.
func LoadArmors(dir string) ([]*ArmorDef, error) {
	paths, err := yamlFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArmors: %w", err)
	}

	armors := []*ArmorDef{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot read file %q: %w", path, err)
		}
		var a ArmorDef
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("LoadArmors: cannot parse file %q: %w", path, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("LoadArmors: invalid armor in %q: %w", path, err)
		}
		armors = append(armors, &a)
	}
	return armors, nil
}
