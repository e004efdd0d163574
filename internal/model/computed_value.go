package model

import "math"

// ComputedValue is the base and scaling contribution of a single damage
// type or status effect.
type ComputedValue struct {
	Base    float64
	Scaling float64
}

// NewComputedValue returns a ComputedValue with the given parts.
func NewComputedValue(base, scaling float64) ComputedValue {
	return ComputedValue{Base: base, Scaling: scaling}
}

// Total returns floor(Base + Scaling), the value the game displays.
func (v ComputedValue) Total() int {
	return int(math.Floor(v.Base + v.Scaling))
}

// AttackPower holds one ComputedValue per damage type.
// The array form guarantees every damage type is always present.
type AttackPower struct {
	values [DamageTypeCount]ComputedValue
}

// NewAttackPower returns an AttackPower with every entry zeroed.
func NewAttackPower() AttackPower {
	return AttackPower{}
}

// Get returns the entry for a damage type.
func (ap AttackPower) Get(dt DamageType) ComputedValue {
	return ap.values[dt]
}

// Map returns a new AttackPower with every entry replaced by fn(damageType, entry).
// The receiver is not modified.
func (ap AttackPower) Map(fn func(DamageType, ComputedValue) ComputedValue) AttackPower {
	var out AttackPower
	for _, dt := range AllDamageTypes {
		out.values[dt] = fn(dt, ap.values[dt])
	}
	return out
}

// TryMap is Map with a fallible callback. Entries are visited in canonical
// order and the first error stops the walk.
func (ap AttackPower) TryMap(fn func(DamageType, ComputedValue) (ComputedValue, error)) (AttackPower, error) {
	var out AttackPower
	for _, dt := range AllDamageTypes {
		v, err := fn(dt, ap.values[dt])
		if err != nil {
			return AttackPower{}, err
		}
		out.values[dt] = v
	}
	return out, nil
}

// Total sums the already floored total of each entry.
func (ap AttackPower) Total() int {
	total := 0
	for _, v := range ap.values {
		total += v.Total()
	}
	return total
}

// Items returns the five entries in canonical damage type order.
func (ap AttackPower) Items() []ComputedValue {
	items := make([]ComputedValue, DamageTypeCount)
	copy(items, ap.values[:])
	return items
}

// StatusEffects holds one ComputedValue per status effect.
type StatusEffects struct {
	values [StatusEffectCount]ComputedValue
}

// Get returns the entry for a status effect.
func (se StatusEffects) Get(st StatusEffectType) ComputedValue {
	return se.values[st]
}

// With returns a copy with the entry for st replaced.
func (se StatusEffects) With(st StatusEffectType, v ComputedValue) StatusEffects {
	se.values[st] = v
	return se
}

// Items returns the six entries in canonical status effect order.
func (se StatusEffects) Items() []ComputedValue {
	items := make([]ComputedValue, StatusEffectCount)
	copy(items, se.values[:])
	return items
}
