package armament

import (
	"fmt"

	"github.com/udisondev/armcalc/internal/model"
)

// StatusEffect computes potency for every status effect.
func (c *Calculator) StatusEffect(attrs model.Attributes) (model.StatusEffects, error) {
	var out model.StatusEffects
	for _, st := range model.AllStatusEffects {
		v, err := c.BaseAndScaledEffect(attrs, st)
		if err != nil {
			return model.StatusEffects{}, fmt.Errorf("status effect %s: %w", st, err)
		}
		out = out.With(st, v)
	}
	return out, nil
}

// BaseAndScaledEffect computes one status effect. Arcane drives the
// scaling of every effect, whatever attribute the effect is flavoured by.
func (c *Calculator) BaseAndScaledEffect(attrs model.Attributes, st model.StatusEffectType) (model.ComputedValue, error) {
	base := c.affinity.StatusEffects[st]

	// Overlay index is the reinforcement level itself.
	overlays := c.affinity.StatusEffectOverlay
	level := c.reinforcement.Level
	if level >= 0 && len(overlays) > level {
		if v := overlays[level][st]; v != 0 {
			base = v
		}
	}

	// Graph id 0 counts as "does not scale" for status effects.
	graphID, ok := c.affinity.EffectGraph(st)
	if !ok || graphID == 0 {
		return model.NewComputedValue(base, 0), nil
	}

	baseScaling := c.affinity.Scaling[model.Arcane]
	levelScaling := c.reinforcement.Scaling[model.Arcane]
	correction, err := c.curveAt(graphID, attrs[model.Arcane])
	if err != nil {
		return model.ComputedValue{}, err
	}

	return model.NewComputedValue(base, base*baseScaling*levelScaling*correction), nil
}
