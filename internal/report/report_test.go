package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armcalc/internal/game/armament"
	"github.com/udisondev/armcalc/internal/model"
)

func TestTable_Lines(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		want  []string
	}{
		{
			name:  "empty",
			table: Table{},
			want:  nil,
		},
		{
			name: "left and right aligned",
			table: Table{
				Headers:    []string{"name", "value"},
				Rows:       [][]string{{"a", "1"}, {"longer", "100"}},
				RightAlign: map[int]bool{1: true},
			},
			want: []string{
				"name    value",
				"a           1",
				"longer    100",
			},
		},
		{
			name: "short rows are padded",
			table: Table{
				Headers: []string{"a", "b", "c"},
				Rows:    [][]string{{"x"}},
			},
			want: []string{
				"a  b  c",
				"x",
			},
		},
		{
			name: "wide runes",
			table: Table{
				Headers: []string{"名前", "x"},
				Rows:    [][]string{{"ab", "y"}},
			},
			want: []string{
				"名前  x",
				"ab    y",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.Lines())
		})
	}
}

func TestAttackPower(t *testing.T) {
	ap := model.NewAttackPower().Map(func(dt model.DamageType, _ model.ComputedValue) model.ComputedValue {
		switch dt {
		case model.Physical:
			return model.NewComputedValue(87.5, 40.25)
		case model.Holy:
			return model.NewComputedValue(69, 12.9)
		}
		return model.ComputedValue{}
	})

	lines := AttackPower(ap).Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "damage     base  scaling  total", lines[0])
	assert.Equal(t, "physical  87.50    40.25    127", lines[1])
	assert.Equal(t, "holy      69.00    12.90     81", lines[2])
	assert.Equal(t, "total                       208", lines[3])
}

func TestStatusEffects(t *testing.T) {
	assert.Empty(t, StatusEffects(model.StatusEffects{}).Rows)

	se := model.StatusEffects{}.With(model.Poison, model.NewComputedValue(70, 13.5))
	table := StatusEffects(se)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"poison", "70.00", "13.50", "83"}, table.Rows[0])
}

func TestBatch(t *testing.T) {
	results := []armament.Result{
		{
			Build: armament.Build{
				Identity:   armament.Identity{Name: "Clayman's Harpoon", Affinity: model.PoisonAffinity, Level: 14},
				Attributes: model.NewAttributes(23, 23, 11, 10, 10),
			},
			StatusEffects: model.StatusEffects{}.With(model.Poison, model.NewComputedValue(70, 13.5)),
		},
		{
			Build: armament.Build{
				Identity:   armament.Identity{Name: "Dagger", Affinity: model.Standard},
				Attributes: model.NewAttributes(1, 1, 1, 1, 1),
			},
			Unmet: []model.Attribute{model.Strength, model.Dexterity},
		},
	}

	out := Batch(results).String()
	assert.True(t, strings.HasSuffix(out, "\n"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Poison Clayman's Harpoon +14")
	assert.Contains(t, lines[1], "poison 83")
	assert.Contains(t, lines[2], "Standard Dagger +0")
	assert.Contains(t, lines[2], model.Strength.String()+","+model.Dexterity.String())
}
