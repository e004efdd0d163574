package data

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/udisondev/armcalc/internal/model"
)

// TableID identifies a reinforcement table, correction attack profile or
// correction graph. Game data files key these tables by stringified numbers
// ("12") while references inside affinity properties are plain numbers (12),
// so TableID accepts both forms.
type TableID int

// MarshalText implements encoding.TextMarshaler.
func (id TableID) MarshalText() ([]byte, error) {
	return []byte(strconv.Itoa(int(id))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TableID) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(string(bytes.TrimSpace(text)))
	if err != nil {
		return fmt.Errorf("parsing table id %q: %w", text, err)
	}
	*id = TableID(n)
	return nil
}

// UnmarshalJSON accepts both 12 and "12".
func (id *TableID) UnmarshalJSON(b []byte) error {
	return id.UnmarshalText(bytes.Trim(b, `"`))
}

// AffinityProperties describes one affinity of a weapon.
type AffinityProperties struct {
	ReinforcementID    TableID `yaml:"reinforcement_id" json:"reinforcement_id"`
	CorrectionAttackID TableID `yaml:"correction_attack_id" json:"correction_attack_id"`

	// CorrectionCalcID maps a damage type or status effect name to the
	// correction graph used for it. Only types that scale are present.
	CorrectionCalcID map[string]TableID `yaml:"correction_calc_id" json:"correction_calc_id"`

	Damage        map[model.DamageType]float64       `yaml:"damage" json:"damage"`
	StatusEffects map[model.StatusEffectType]float64 `yaml:"status_effects" json:"status_effects"`

	// StatusEffectOverlay is indexed by reinforcement level. Levels whose
	// potency does not change are empty.
	StatusEffectOverlay []map[model.StatusEffectType]float64 `yaml:"status_effect_overlay" json:"status_effect_overlay"`

	Scaling map[model.Attribute]float64 `yaml:"scaling" json:"scaling"`
}

// DamageGraph returns the correction graph id for a damage type.
func (p *AffinityProperties) DamageGraph(dt model.DamageType) (TableID, bool) {
	id, ok := p.CorrectionCalcID[dt.String()]
	return id, ok
}

// EffectGraph returns the correction graph id for a status effect.
func (p *AffinityProperties) EffectGraph(st model.StatusEffectType) (TableID, bool) {
	id, ok := p.CorrectionCalcID[st.String()]
	return id, ok
}

// ReinforcementData holds the multipliers of one upgrade level.
type ReinforcementData struct {
	Damage  map[model.DamageType]float64 `yaml:"damage" json:"damage"`
	Scaling map[model.Attribute]float64  `yaml:"scaling" json:"scaling"`
	Level   int                          `yaml:"level" json:"level"`
}

// CorrectionAttack describes, for every (damage type, attribute) pair,
// whether the pair scales, how strongly, and an optional base scaling override.
type CorrectionAttack struct {
	Correction map[model.DamageType]map[model.Attribute]bool    `yaml:"correction" json:"correction"`
	Override   map[model.DamageType]map[model.Attribute]float64 `yaml:"override" json:"override"`
	Ratio      map[model.DamageType]map[model.Attribute]float64 `yaml:"ratio" json:"ratio"`
}

// Scales reports whether attr affects dt at all.
func (c *CorrectionAttack) Scales(dt model.DamageType, attr model.Attribute) bool {
	return c.Correction[dt][attr]
}

// RatioOf returns the scaling impact ratio, 0 when absent.
func (c *CorrectionAttack) RatioOf(dt model.DamageType, attr model.Attribute) float64 {
	return c.Ratio[dt][attr]
}

// OverrideOf returns the base scaling override, 0 when absent.
func (c *CorrectionAttack) OverrideOf(dt model.DamageType, attr model.Attribute) float64 {
	return c.Override[dt][attr]
}

// CorrectionGraph maps a graph id to its curve. The curve is indexed by
// attribute value.
type CorrectionGraph map[TableID][]float64

// ArmamentData is a weapon with all of its affinities.
type ArmamentData struct {
	Affinity     map[model.Affinity]*AffinityProperties `yaml:"affinity" json:"affinity"`
	Requirements map[model.Attribute]int               `yaml:"requirements" json:"requirements"`
}

// Tables is the full set of static game data a calculator resolves from.
// Tables are treated as read-only once loaded and may be shared freely.
type Tables struct {
	Armaments        map[string]*ArmamentData          `yaml:"armaments" json:"armaments"`
	Reinforcements   map[TableID][]ReinforcementData   `yaml:"reinforcements" json:"reinforcements"`
	CorrectionAttack map[TableID]*CorrectionAttack     `yaml:"correction_attack" json:"correction_attack"`
	CorrectionGraph  CorrectionGraph                   `yaml:"correction_graph" json:"correction_graph"`
}

// Names returns armament names in lexical order.
func (t *Tables) Names() []string {
	names := make([]string, 0, len(t.Armaments))
	for name := range t.Armaments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Affinities returns the affinities available for a weapon, in menu order.
// Returns nil if the weapon is unknown.
func (t *Tables) Affinities(name string) []model.Affinity {
	arm, ok := t.Armaments[name]
	if !ok {
		return nil
	}
	out := make([]model.Affinity, 0, len(arm.Affinity))
	for _, a := range model.AllAffinities {
		if _, ok := arm.Affinity[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// MaxLevel returns the highest reinforcement level available for a weapon
// affinity, or -1 if it cannot be resolved.
func (t *Tables) MaxLevel(name string, affinity model.Affinity) int {
	arm, ok := t.Armaments[name]
	if !ok {
		return -1
	}
	props, ok := arm.Affinity[affinity]
	if !ok || props == nil {
		return -1
	}
	return len(t.Reinforcements[props.ReinforcementID]) - 1
}
