package model

import (
	"fmt"
	"strings"
)

// Affinity selects which scaling profile of a weapon is active.
type Affinity uint8

const (
	Standard Affinity = iota
	Keen
	Heavy
	MagicAffinity
	Cold
	FireAffinity
	LightningAffinity
	FlameArt
	Sacred
	PoisonAffinity
	Occult
	Blood

	AffinityCount = 12
)

// AllAffinities lists affinities in the order the game menus show them.
var AllAffinities = [AffinityCount]Affinity{
	Standard, Keen, Heavy, MagicAffinity, Cold, FireAffinity,
	LightningAffinity, FlameArt, Sacred, PoisonAffinity, Occult, Blood,
}

var affinityNames = [AffinityCount]string{
	"Standard", "Keen", "Heavy", "Magic", "Cold", "Fire",
	"Lightning", "Flame Art", "Sacred", "Poison", "Occult", "Blood",
}

func (a Affinity) String() string {
	if int(a) < len(affinityNames) {
		return affinityNames[a]
	}
	return fmt.Sprintf("Affinity(%d)", uint8(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Affinity) MarshalText() ([]byte, error) {
	if int(a) >= len(affinityNames) {
		return nil, fmt.Errorf("affinity %d: %w", uint8(a), ErrUnknownName)
	}
	return []byte(affinityNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Affinity) UnmarshalText(text []byte) error {
	v, err := ParseAffinity(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAffinity returns the affinity with the given name.
// Matching ignores case so "flame art" and "Flame Art" are the same tag.
func ParseAffinity(name string) (Affinity, error) {
	for i, n := range affinityNames {
		if strings.EqualFold(n, name) {
			return Affinity(i), nil
		}
	}
	return 0, fmt.Errorf("affinity %q: %w", name, ErrUnknownName)
}
