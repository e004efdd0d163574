package report

import (
	"strconv"
	"strings"

	"github.com/udisondev/armcalc/internal/game/armament"
	"github.com/udisondev/armcalc/internal/model"
)

var numericCols = map[int]bool{1: true, 2: true, 3: true}

// AttackPower lists base, scaling and total for every damage type with a
// non-zero value, followed by the attack power total.
func AttackPower(ap model.AttackPower) Table {
	t := Table{
		Headers:    []string{"damage", "base", "scaling", "total"},
		RightAlign: numericCols,
	}
	for i, v := range ap.Items() {
		if v == (model.ComputedValue{}) {
			continue
		}
		t.Rows = append(t.Rows, valueRow(model.AllDamageTypes[i].String(), v))
	}
	t.Rows = append(t.Rows, []string{"total", "", "", strconv.Itoa(ap.Total())})
	return t
}

// StatusEffects lists every status effect with a non-zero buildup. The
// table has no rows when the armament inflicts none.
func StatusEffects(se model.StatusEffects) Table {
	t := Table{
		Headers:    []string{"effect", "base", "scaling", "total"},
		RightAlign: numericCols,
	}
	for i, v := range se.Items() {
		if v == (model.ComputedValue{}) {
			continue
		}
		t.Rows = append(t.Rows, valueRow(model.AllStatusEffects[i].String(), v))
	}
	return t
}

// Batch summarizes one row per evaluated build.
func Batch(results []armament.Result) Table {
	t := Table{
		Headers:    []string{"armament", "attributes", "attack", "status", "unmet"},
		RightAlign: map[int]bool{2: true},
	}
	for _, r := range results {
		t.Rows = append(t.Rows, []string{
			r.Build.Identity.String(),
			r.Build.Attributes.String(),
			strconv.Itoa(r.AttackPower.Total()),
			statusSummary(r.StatusEffects),
			attributeList(r.Unmet),
		})
	}
	return t
}

func valueRow(name string, v model.ComputedValue) []string {
	return []string{
		name,
		formatFloat(v.Base),
		formatFloat(v.Scaling),
		strconv.Itoa(v.Total()),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func statusSummary(se model.StatusEffects) string {
	var parts []string
	for i, v := range se.Items() {
		if total := v.Total(); total != 0 {
			parts = append(parts, model.AllStatusEffects[i].String()+" "+strconv.Itoa(total))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func attributeList(attrs []model.Attribute) string {
	if len(attrs) == 0 {
		return "-"
	}
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.String()
	}
	return strings.Join(names, ",")
}
