package armament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armcalc/internal/model"
)

func TestAttackPower_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weapon string
		aff    model.Affinity
		level  int
		attrs  model.Attributes
		want   int
	}{
		{"Standard Dagger +0", "Dagger", model.Standard, 0, model.NewAttributes(10, 10, 10, 10, 10), 82},
		{"Commander's Standard +7", "Commander's Standard", model.Standard, 7, model.NewAttributes(33, 21, 34, 54, 23), 424},
		{"Crystal Sword +0", "Crystal Sword", model.Standard, 0, model.NewAttributes(23, 23, 11, 10, 10), 166},
		{"Lightning Broadsword +14", "Broadsword", model.LightningAffinity, 14, model.NewAttributes(23, 23, 11, 10, 10), 365},
		{"Poison Clayman's Harpoon +14", "Clayman's Harpoon", model.PoisonAffinity, 14, model.NewAttributes(23, 23, 11, 10, 10), 249},
		{"Poison Clayman's Harpoon +5", "Clayman's Harpoon", model.PoisonAffinity, 5, model.NewAttributes(23, 23, 11, 10, 10), 184},
		{"Standard Dagger +25", "Dagger", model.Standard, 25, model.NewAttributes(10, 10, 10, 10, 10), 206},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCalc(t, tt.weapon, tt.aff, tt.level)
			ap, err := c.AttackPower(tt.attrs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ap.Total())
		})
	}
}

func TestAttackPower_PerType(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Commander's Standard", model.Standard, 7)
	ap, err := c.AttackPower(model.NewAttributes(33, 21, 34, 54, 23))
	require.NoError(t, err)

	phys := ap.Get(model.Physical)
	assert.InDelta(t, 161.0, phys.Base, 1e-9)
	assert.InDelta(t, 42.371175, phys.Scaling, 1e-9)
	assert.Equal(t, 203, phys.Total())

	holy := ap.Get(model.Holy)
	assert.InDelta(t, 126.96, holy.Base, 1e-9)
	assert.InDelta(t, 94.407904828992, holy.Scaling, 1e-9)
	assert.Equal(t, 221, holy.Total())

	for _, dt := range []model.DamageType{model.Magic, model.Fire, model.Lightning} {
		assert.Equal(t, model.ComputedValue{}, ap.Get(dt), dt.String())
	}
}

func TestScalingPerAttribute_NotScaling(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Dagger", model.Standard, 0)

	// Intelligence does not scale physical on the Dagger, whatever its value.
	for _, v := range []int{0, 10, 99, 500} {
		s, err := c.ScalingPerAttribute(model.Physical, model.Intelligence, v)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s)
	}
}

func TestScalingPerAttribute_Values(t *testing.T) {
	t.Parallel()

	dagger := newCalc(t, "Dagger", model.Standard, 0)

	s, err := dagger.ScalingPerAttribute(model.Physical, model.Strength, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.04375, s, 1e-12)

	s, err = dagger.ScalingPerAttribute(model.Physical, model.Dexterity, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.05625, s, 1e-12)
}

func TestScalingPerAttribute_Override(t *testing.T) {
	t.Parallel()

	// Lightning/dexterity has an override of 0.4 replacing the affinity's 0.6.
	c := newCalc(t, "Broadsword", model.LightningAffinity, 14)

	s, err := c.ScalingPerAttribute(model.Lightning, model.Dexterity, 23)
	require.NoError(t, err)
	assert.InDelta(t, 0.4*1.21*0.23, s, 1e-12)

	// No override for physical/dexterity: the affinity weight is used.
	s, err = c.ScalingPerAttribute(model.Physical, model.Dexterity, 23)
	require.NoError(t, err)
	assert.InDelta(t, 0.6*1.21*0.2875, s, 1e-12)
}

func TestScalingPerAttribute_RequirementPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weapon string
		level  int
		dt     model.DamageType
		attr   model.Attribute
		values []int
		want   float64
	}{
		{
			name:   "ratio 1",
			weapon: "Crystal Sword",
			dt:     model.Magic,
			attr:   model.Intelligence,
			values: []int{0, 1, 11, 14},
			want:   -0.4,
		},
		{
			name:   "ratio 1.2",
			weapon: "Commander's Standard",
			level:  7,
			dt:     model.Holy,
			attr:   model.Faith,
			values: []int{0, 10, 19},
			want:   0.6*(1.2-1) - 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newCalc(t, tt.weapon, model.Standard, tt.level)
			var first float64
			for i, v := range tt.values {
				s, err := c.ScalingPerAttribute(tt.dt, tt.attr, v)
				require.NoError(t, err)
				assert.InDelta(t, tt.want, s, 1e-12, "value %d", v)
				if i == 0 {
					first = s
				}
				assert.Equal(t, first, s, "penalty must not depend on the shortfall")
			}
		})
	}
}

func TestBaseAndScaledDamage_LowCap(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Crystal Sword", model.Standard, 0)

	tests := []struct {
		name  string
		attrs model.Attributes
		want  model.ComputedValue
		total int
	}{
		{
			// -0.4 + -0.4 = -0.8 is below the single worst -0.4: the cap wins.
			name:  "two unmet requirements",
			attrs: model.NewAttributes(5, 5, 11, 10, 10),
			want:  model.NewComputedValue(104, 104*-0.4),
			total: 62,
		},
		{
			// -0.4 + 0.08625 stays above -0.4: the sum wins.
			name:  "one unmet requirement",
			attrs: model.NewAttributes(5, 23, 11, 10, 10),
			want:  model.NewComputedValue(104, 104*(-0.4+0.08625)),
			total: 71,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := c.BaseAndScaledDamage(tt.attrs, model.Physical)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Base, v.Base, 1e-9)
			assert.InDelta(t, tt.want.Scaling, v.Scaling, 1e-9)
			assert.Equal(t, tt.total, v.Total())
		})
	}
}

func TestBaseAndScaledDamage_NoBase(t *testing.T) {
	t.Parallel()

	// Fire has neither base damage nor a reinforcement multiplier on the Dagger.
	c := newCalc(t, "Dagger", model.Standard, 0)
	v, err := c.BaseAndScaledDamage(model.NewAttributes(10, 10, 10, 10, 10), model.Fire)
	require.NoError(t, err)
	assert.Equal(t, model.ComputedValue{}, v)
}

func TestAttackPower_GraphIndexError(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Dagger", model.Standard, 0)

	_, err := c.AttackPower(model.NewAttributes(100, 10, 10, 10, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGraphIndex)
	assert.ErrorIs(t, err, ErrIndex)

	_, err = c.AttackPower(model.NewAttributes(99, 99, 10, 10, 10))
	assert.NoError(t, err)
}

func TestAttackPower_MissingGraphID(t *testing.T) {
	t.Parallel()

	tables := freshTables(t)
	delete(tables.Armaments["Dagger"].Affinity[model.Standard].CorrectionCalcID, "physical")

	c, err := New(Identity{Name: "Dagger", Affinity: model.Standard}, tables)
	require.NoError(t, err)

	_, err = c.AttackPower(model.NewAttributes(10, 10, 10, 10, 10))
	assert.ErrorIs(t, err, ErrUnknownGraph)
	assert.ErrorIs(t, err, ErrLookup)

	// Below requirements the curve is never consulted.
	ap, err := c.AttackPower(model.NewAttributes(1, 1, 10, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, 45, ap.Total())
}
