// Package armament computes attack power and status effect potency of a
// weapon for a given set of character attributes.
package armament

import (
	"errors"
	"fmt"

	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/model"
)

// Lookup errors: an identity or id is absent from the tables.
var (
	ErrLookup                  = errors.New("lookup failed")
	ErrUnknownArmament         = fmt.Errorf("%w: unknown armament", ErrLookup)
	ErrUnknownAffinity         = fmt.Errorf("%w: unknown affinity", ErrLookup)
	ErrUnknownReinforcement    = fmt.Errorf("%w: unknown reinforcement", ErrLookup)
	ErrUnknownCorrectionAttack = fmt.Errorf("%w: unknown correction attack", ErrLookup)
	ErrUnknownGraph            = fmt.Errorf("%w: unknown correction graph", ErrLookup)
)

// Index errors: a level or attribute value is outside the range the tables define.
var (
	ErrIndex           = errors.New("index out of range")
	ErrLevelOutOfRange = fmt.Errorf("%w: reinforcement level", ErrIndex)
	ErrGraphIndex      = fmt.Errorf("%w: correction graph", ErrIndex)
)

// Requirement penalty: 0.6*(ratio-1) - 0.4, regardless of the shortfall.
const (
	penaltyRatioWeight = 0.6
	penaltyOffset      = 0.4
)

// Identity selects a weapon configuration.
type Identity struct {
	Name     string
	Affinity model.Affinity
	Level    int
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %s +%d", id.Affinity, id.Name, id.Level)
}

// Calculator holds the slice of the game data resolved for one Identity.
// It is immutable after New and safe for concurrent use.
type Calculator struct {
	id Identity

	affinity         *data.AffinityProperties
	requirements     map[model.Attribute]int
	reinforcement    data.ReinforcementData
	correctionAttack *data.CorrectionAttack
	correctionGraph  data.CorrectionGraph
}

// New resolves id against tables. Either every part of the context
// resolves or an error wrapping ErrLookup or ErrIndex is returned.
func New(id Identity, tables *data.Tables) (*Calculator, error) {
	arm, ok := tables.Armaments[id.Name]
	if !ok || arm == nil {
		return nil, fmt.Errorf("resolving %q: %w", id.Name, ErrUnknownArmament)
	}
	props, ok := arm.Affinity[id.Affinity]
	if !ok || props == nil {
		return nil, fmt.Errorf("resolving %q affinity %s: %w", id.Name, id.Affinity, ErrUnknownAffinity)
	}

	levels, ok := tables.Reinforcements[props.ReinforcementID]
	if !ok {
		return nil, fmt.Errorf("resolving reinforcement %d: %w", props.ReinforcementID, ErrUnknownReinforcement)
	}
	if id.Level < 0 || id.Level >= len(levels) {
		return nil, fmt.Errorf("resolving reinforcement %d level %d (max %d): %w",
			props.ReinforcementID, id.Level, len(levels)-1, ErrLevelOutOfRange)
	}

	profile, ok := tables.CorrectionAttack[props.CorrectionAttackID]
	if !ok || profile == nil {
		return nil, fmt.Errorf("resolving correction attack %d: %w", props.CorrectionAttackID, ErrUnknownCorrectionAttack)
	}

	return &Calculator{
		id:               id,
		affinity:         props,
		requirements:     arm.Requirements,
		reinforcement:    levels[id.Level],
		correctionAttack: profile,
		correctionGraph:  tables.CorrectionGraph,
	}, nil
}

// Reimport resolves the same identity against new tables. The returned
// calculator shares nothing with the receiver's context.
func (c *Calculator) Reimport(tables *data.Tables) (*Calculator, error) {
	return New(c.id, tables)
}

// Identity returns the weapon configuration the calculator was built for.
func (c *Calculator) Identity() Identity {
	return c.id
}

// Requirement returns the weapon requirement for attr, 0 if none.
func (c *Calculator) Requirement(attr model.Attribute) int {
	return c.requirements[attr]
}

// UnmetRequirements returns the attributes below the weapon requirement,
// in canonical order. These are the attributes that get the flat penalty.
func (c *Calculator) UnmetRequirements(attrs model.Attributes) []model.Attribute {
	var unmet []model.Attribute
	for _, attr := range model.AllAttributes {
		if attrs[attr] < c.requirements[attr] {
			unmet = append(unmet, attr)
		}
	}
	return unmet
}

// curveAt returns graph[id][value].
func (c *Calculator) curveAt(id data.TableID, value int) (float64, error) {
	curve, ok := c.correctionGraph[id]
	if !ok {
		return 0, fmt.Errorf("graph %d: %w", id, ErrUnknownGraph)
	}
	if value < 0 || value >= len(curve) {
		return 0, fmt.Errorf("graph %d value %d (defined 0..%d): %w", id, value, len(curve)-1, ErrGraphIndex)
	}
	return curve[value], nil
}
