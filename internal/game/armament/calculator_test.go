package armament

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/model"
	"github.com/udisondev/armcalc/internal/testutil"
)

var (
	fixtureOnce   sync.Once
	fixtureTables *data.Tables
	fixtureErr    error
)

// loadTables loads the fixture tables once; tests must not mutate them.
func loadTables(t *testing.T) *data.Tables {
	t.Helper()
	fixtureOnce.Do(func() {
		fixtureTables, fixtureErr = data.LoadFiles(data.FilesIn(testutil.TestdataDir()))
	})
	require.NoError(t, fixtureErr)
	return fixtureTables
}

// freshTables loads a private copy that the test may modify.
func freshTables(t *testing.T) *data.Tables {
	t.Helper()
	return testutil.Tables(t)
}

func newCalc(t *testing.T, name string, aff model.Affinity, level int) *Calculator {
	t.Helper()
	c, err := New(Identity{Name: name, Affinity: aff, Level: level}, loadTables(t))
	require.NoError(t, err)
	return c
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       Identity
		mutate   func(*data.Tables)
		wantErr  error
		wantKind error
	}{
		{
			name:     "unknown weapon",
			id:       Identity{Name: "Zweihander", Affinity: model.Standard},
			wantErr:  ErrUnknownArmament,
			wantKind: ErrLookup,
		},
		{
			name:     "affinity not available",
			id:       Identity{Name: "Dagger", Affinity: model.Blood},
			wantErr:  ErrUnknownAffinity,
			wantKind: ErrLookup,
		},
		{
			name:     "level above table",
			id:       Identity{Name: "Commander's Standard", Affinity: model.Standard, Level: 11},
			wantErr:  ErrLevelOutOfRange,
			wantKind: ErrIndex,
		},
		{
			name:     "negative level",
			id:       Identity{Name: "Dagger", Affinity: model.Standard, Level: -1},
			wantErr:  ErrLevelOutOfRange,
			wantKind: ErrIndex,
		},
		{
			name: "reinforcement table missing",
			id:   Identity{Name: "Dagger", Affinity: model.Standard},
			mutate: func(tb *data.Tables) {
				delete(tb.Reinforcements, 0)
			},
			wantErr:  ErrUnknownReinforcement,
			wantKind: ErrLookup,
		},
		{
			name: "correction attack missing",
			id:   Identity{Name: "Dagger", Affinity: model.Standard},
			mutate: func(tb *data.Tables) {
				delete(tb.CorrectionAttack, 0)
			},
			wantErr:  ErrUnknownCorrectionAttack,
			wantKind: ErrLookup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tables := loadTables(t)
			if tt.mutate != nil {
				tables = freshTables(t)
				tt.mutate(tables)
			}

			c, err := New(tt.id, tables)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestNew_MaxLevel(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Commander's Standard", model.Standard, 10)
	assert.Equal(t, Identity{Name: "Commander's Standard", Affinity: model.Standard, Level: 10}, c.Identity())
}

func TestReimport_ReplacesContext(t *testing.T) {
	t.Parallel()

	attrs := model.NewAttributes(10, 10, 10, 10, 10)
	c := newCalc(t, "Dagger", model.Standard, 0)

	tables := freshTables(t)
	tables.Armaments["Dagger"].Affinity[model.Standard].Damage[model.Physical] = 152

	updated, err := c.Reimport(tables)
	require.NoError(t, err)

	before, err := c.AttackPower(attrs)
	require.NoError(t, err)
	after, err := updated.AttackPower(attrs)
	require.NoError(t, err)

	assert.Equal(t, 82, before.Total())
	assert.Equal(t, 167, after.Total())
	assert.Equal(t, c.Identity(), updated.Identity())

	delete(tables.Armaments, "Dagger")
	_, err = c.Reimport(tables)
	assert.ErrorIs(t, err, ErrUnknownArmament)
}

func TestUnmetRequirements(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Crystal Sword", model.Standard, 0)

	assert.Empty(t, c.UnmetRequirements(model.NewAttributes(13, 10, 15, 0, 0)))
	assert.Equal(t,
		[]model.Attribute{model.Strength, model.Intelligence},
		c.UnmetRequirements(model.NewAttributes(12, 10, 11, 0, 0)))
	assert.Equal(t, 15, c.Requirement(model.Intelligence))
	assert.Equal(t, 0, c.Requirement(model.Arcane))
}

func TestCalculator_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := newCalc(t, "Broadsword", model.LightningAffinity, 14)
	attrs := model.NewAttributes(23, 23, 11, 10, 10)

	var wg sync.WaitGroup
	totals := make([]int, 16)
	for i := range totals {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ap, err := c.AttackPower(attrs)
			if err == nil {
				totals[i] = ap.Total()
			}
		}()
	}
	wg.Wait()

	for i, total := range totals {
		assert.Equal(t, 365, total, "goroutine %d", i)
	}
}
