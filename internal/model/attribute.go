package model

import (
	"errors"
	"fmt"
)

// ErrUnknownName is returned when a name does not match any member of an enumeration.
var ErrUnknownName = errors.New("unknown name")

// Attribute is a character attribute that weapons scale with.
type Attribute uint8

const (
	Strength Attribute = iota
	Dexterity
	Intelligence
	Faith
	Arcane

	AttributeCount = 5
)

// AllAttributes lists attributes in canonical order.
var AllAttributes = [AttributeCount]Attribute{Strength, Dexterity, Intelligence, Faith, Arcane}

var attributeNames = [AttributeCount]string{"strength", "dexterity", "intelligence", "faith", "arcane"}

func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return fmt.Sprintf("Attribute(%d)", uint8(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Attribute) MarshalText() ([]byte, error) {
	if int(a) >= len(attributeNames) {
		return nil, fmt.Errorf("attribute %d: %w", uint8(a), ErrUnknownName)
	}
	return []byte(attributeNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Attribute) UnmarshalText(text []byte) error {
	v, err := ParseAttribute(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAttribute returns the attribute with the given lowercase name.
func ParseAttribute(name string) (Attribute, error) {
	for i, n := range attributeNames {
		if n == name {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("attribute %q: %w", name, ErrUnknownName)
}

// Attributes holds a value for every attribute, indexed by Attribute.
// Attributes that were never set are 0.
type Attributes [AttributeCount]int

// NewAttributes builds Attributes in canonical order:
// strength, dexterity, intelligence, faith, arcane.
func NewAttributes(str, dex, intl, fth, arc int) Attributes {
	return Attributes{str, dex, intl, fth, arc}
}

// Get returns the value of a single attribute.
func (a Attributes) Get(attr Attribute) int {
	return a[attr]
}

// With returns a copy with attr set to value.
func (a Attributes) With(attr Attribute, value int) Attributes {
	a[attr] = value
	return a
}

func (a Attributes) String() string {
	return fmt.Sprintf("%d/%d/%d/%d/%d", a[Strength], a[Dexterity], a[Intelligence], a[Faith], a[Arcane])
}
