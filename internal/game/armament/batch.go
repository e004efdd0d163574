package armament

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/model"
)

// Build is one weapon configuration paired with character attributes.
type Build struct {
	Identity   Identity
	Attributes model.Attributes
}

// Result is the evaluation of a Build.
type Result struct {
	Build         Build
	AttackPower   model.AttackPower
	StatusEffects model.StatusEffects
	Unmet         []model.Attribute
}

// Evaluate resolves and computes a single build.
func Evaluate(b Build, tables *data.Tables) (Result, error) {
	calc, err := New(b.Identity, tables)
	if err != nil {
		return Result{}, err
	}
	ap, err := calc.AttackPower(b.Attributes)
	if err != nil {
		return Result{}, fmt.Errorf("attack power: %w", err)
	}
	se, err := calc.StatusEffect(b.Attributes)
	if err != nil {
		return Result{}, fmt.Errorf("status effects: %w", err)
	}
	return Result{
		Build:         b,
		AttackPower:   ap,
		StatusEffects: se,
		Unmet:         calc.UnmetRequirements(b.Attributes),
	}, nil
}

// EvaluateBatch evaluates builds concurrently, at most workers at a time.
// Results keep the input order. The first failure cancels the remaining
// builds and is returned.
func EvaluateBatch(ctx context.Context, tables *data.Tables, builds []Build, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(builds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, b := range builds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Evaluate(b, tables)
			if err != nil {
				return fmt.Errorf("build %d (%s): %w", i, b.Identity, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
