package data

import (
	"errors"
	"fmt"

	"github.com/udisondev/armcalc/internal/model"
)

// ErrInvalidTables wraps every problem reported by Validate.
var ErrInvalidTables = errors.New("invalid game data")

// Validate checks that every id referenced by an affinity resolves and
// that correction_calc_id keys name a damage type or status effect.
// All problems are reported, joined.
func (t *Tables) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidTables}, args...)...))
	}

	for _, name := range t.Names() {
		arm := t.Armaments[name]
		if arm == nil {
			fail("armament %q has no data", name)
			continue
		}
		for _, aff := range t.Affinities(name) {
			props := arm.Affinity[aff]
			if props == nil {
				fail("%s %s: empty affinity", name, aff)
				continue
			}
			levels, ok := t.Reinforcements[props.ReinforcementID]
			if !ok {
				fail("%s %s: reinforcement %d not found", name, aff, props.ReinforcementID)
			}
			for i, lvl := range levels {
				if lvl.Level != i {
					fail("reinforcement %d: entry %d has level %d", props.ReinforcementID, i, lvl.Level)
					break
				}
			}
			if _, ok := t.CorrectionAttack[props.CorrectionAttackID]; !ok {
				fail("%s %s: correction attack %d not found", name, aff, props.CorrectionAttackID)
			}
			for key, graphID := range props.CorrectionCalcID {
				if !isCalcKey(key) {
					fail("%s %s: correction_calc_id key %q is not a damage type or status effect", name, aff, key)
				}
				if _, ok := t.CorrectionGraph[graphID]; !ok {
					fail("%s %s: correction graph %d for %s not found", name, aff, graphID, key)
				}
			}
		}
	}

	return errors.Join(errs...)
}

func isCalcKey(key string) bool {
	if _, err := model.ParseDamageType(key); err == nil {
		return true
	}
	_, err := model.ParseStatusEffect(key)
	return err == nil
}
