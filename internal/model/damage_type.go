package model

import "fmt"

// DamageType is one of the five attack power components of a weapon.
type DamageType uint8

const (
	Physical DamageType = iota
	Magic
	Fire
	Lightning
	Holy

	DamageTypeCount = 5
)

// AllDamageTypes lists damage types in canonical order.
var AllDamageTypes = [DamageTypeCount]DamageType{Physical, Magic, Fire, Lightning, Holy}

var damageTypeNames = [DamageTypeCount]string{"physical", "magic", "fire", "lightning", "holy"}

func (d DamageType) String() string {
	if int(d) < len(damageTypeNames) {
		return damageTypeNames[d]
	}
	return fmt.Sprintf("DamageType(%d)", uint8(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d DamageType) MarshalText() ([]byte, error) {
	if int(d) >= len(damageTypeNames) {
		return nil, fmt.Errorf("damage type %d: %w", uint8(d), ErrUnknownName)
	}
	return []byte(damageTypeNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DamageType) UnmarshalText(text []byte) error {
	v, err := ParseDamageType(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDamageType returns the damage type with the given lowercase name.
func ParseDamageType(name string) (DamageType, error) {
	for i, n := range damageTypeNames {
		if n == name {
			return DamageType(i), nil
		}
	}
	return 0, fmt.Errorf("damage type %q: %w", name, ErrUnknownName)
}

// StatusEffectType is a build-up status effect a weapon can inflict.
type StatusEffectType uint8

const (
	Bleed StatusEffectType = iota
	Frostbite
	Poison
	ScarletRot
	Sleep
	Madness

	StatusEffectCount = 6
)

// AllStatusEffects lists status effects in canonical order.
var AllStatusEffects = [StatusEffectCount]StatusEffectType{Bleed, Frostbite, Poison, ScarletRot, Sleep, Madness}

var statusEffectNames = [StatusEffectCount]string{"bleed", "frostbite", "poison", "scarlet_rot", "sleep", "madness"}

func (s StatusEffectType) String() string {
	if int(s) < len(statusEffectNames) {
		return statusEffectNames[s]
	}
	return fmt.Sprintf("StatusEffectType(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s StatusEffectType) MarshalText() ([]byte, error) {
	if int(s) >= len(statusEffectNames) {
		return nil, fmt.Errorf("status effect %d: %w", uint8(s), ErrUnknownName)
	}
	return []byte(statusEffectNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StatusEffectType) UnmarshalText(text []byte) error {
	v, err := ParseStatusEffect(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatusEffect returns the status effect with the given snake_case name.
func ParseStatusEffect(name string) (StatusEffectType, error) {
	for i, n := range statusEffectNames {
		if n == name {
			return StatusEffectType(i), nil
		}
	}
	return 0, fmt.Errorf("status effect %q: %w", name, ErrUnknownName)
}
