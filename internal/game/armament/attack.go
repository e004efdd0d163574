package armament

import (
	"fmt"

	"github.com/udisondev/armcalc/internal/model"
)

// AttackPower computes base and scaled damage for every damage type.
func (c *Calculator) AttackPower(attrs model.Attributes) (model.AttackPower, error) {
	return model.NewAttackPower().TryMap(func(dt model.DamageType, _ model.ComputedValue) (model.ComputedValue, error) {
		return c.BaseAndScaledDamage(attrs, dt)
	})
}

// BaseAndScaledDamage computes one damage type.
//
// Scaling is the sum of per-attribute contributions, floored at the single
// worst contribution: several unmet requirements never penalize more than
// the worst one alone.
func (c *Calculator) BaseAndScaledDamage(attrs model.Attributes, dt model.DamageType) (model.ComputedValue, error) {
	base := c.affinity.Damage[dt] * c.reinforcement.Damage[dt]

	var scalings [model.AttributeCount]float64
	for _, attr := range model.AllAttributes {
		s, err := c.ScalingPerAttribute(dt, attr, attrs[attr])
		if err != nil {
			return model.ComputedValue{}, fmt.Errorf("scaling %s with %s: %w", dt, attr, err)
		}
		scalings[attr] = s
	}

	lowCap := scalings[0]
	sum := scalings[0]
	for _, s := range scalings[1:] {
		lowCap = min(lowCap, s)
		sum += s
	}
	scaling := max(lowCap, sum)

	return model.NewComputedValue(base, base*scaling), nil
}

// ScalingPerAttribute returns how much attr at value contributes to the
// scaling multiplier of dt. Steps run in a fixed order: eligibility,
// requirement penalty, then the correction curve.
func (c *Calculator) ScalingPerAttribute(dt model.DamageType, attr model.Attribute, value int) (float64, error) {
	if !c.correctionAttack.Scales(dt, attr) {
		return 0, nil
	}

	ratio := c.correctionAttack.RatioOf(dt, attr)

	if value < c.requirements[attr] {
		return penaltyRatioWeight*(ratio-1) - penaltyOffset, nil
	}

	baseScaling := c.affinity.Scaling[attr]
	levelScaling := c.reinforcement.Scaling[attr]

	finalBaseScaling := baseScaling
	if override := c.correctionAttack.OverrideOf(dt, attr); override != 0 {
		finalBaseScaling = override
	}

	graphID, ok := c.affinity.DamageGraph(dt)
	if !ok {
		return 0, fmt.Errorf("no correction_calc_id for %s: %w", dt, ErrUnknownGraph)
	}
	correction, err := c.curveAt(graphID, value)
	if err != nil {
		return 0, err
	}

	return ratio - 1 + finalBaseScaling*levelScaling*correction*ratio, nil
}
