package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/armcalc/internal/config"
	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/db"
	"github.com/udisondev/armcalc/internal/game/armament"
	"github.com/udisondev/armcalc/internal/model"
	"github.com/udisondev/armcalc/internal/report"
	"github.com/udisondev/armcalc/internal/store"
)

const defaultAttrs = "10,10,10,10,10"

var errBadAttrs = errors.New("attributes must be 5 comma separated non-negative integers (str,dex,int,fai,arc)")

func (a *app) newARCmd() *cobra.Command {
	var (
		weapon   string
		affinity string
		level    int
		attrs    string
	)
	cmd := &cobra.Command{
		Use:   "ar",
		Short: "Show attack power and status buildup of one weapon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			aff, err := model.ParseAffinity(affinity)
			if err != nil {
				return err
			}
			values, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			res, err := armament.Evaluate(armament.Build{
				Identity:   armament.Identity{Name: weapon, Affinity: aff, Level: level},
				Attributes: values,
			}, tables)
			if err != nil {
				return err
			}
			warnUnmet(res)
			return writeResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&weapon, "weapon", "", "weapon name")
	cmd.Flags().StringVar(&affinity, "affinity", model.Standard.String(), "affinity")
	cmd.Flags().IntVar(&level, "level", 0, "reinforcement level")
	cmd.Flags().StringVar(&attrs, "attrs", defaultAttrs, "str,dex,int,fai,arc")
	_ = cmd.MarkFlagRequired("weapon")
	return cmd
}

func (a *app) newBatchCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate every build listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builds, err := readBuilds(args[0])
			if err != nil {
				return err
			}
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			if workers < 1 {
				workers = a.cfg.Workers
			}
			results, err := armament.EvaluateBatch(cmd.Context(), tables, builds, workers)
			if err != nil {
				return err
			}
			for _, r := range results {
				warnUnmet(r)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report.Batch(results).String())
			return err
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluations (default from config)")
	return cmd
}

func (a *app) newImportCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy file tables into the postgres or sqlite store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if target == "" {
				target = a.cfg.Source
			}
			ctx := cmd.Context()

			tables, err := a.cfg.FileSource().LoadTables(ctx)
			if err != nil {
				return err
			}
			if err := tables.Validate(); err != nil {
				return err
			}

			switch target {
			case config.SourcePostgres:
				src, closeSrc, err := openSource(ctx, a.cfg, target)
				if err != nil {
					return err
				}
				defer closeSrc()
				ds, created, err := src.(*db.GameDataRepository).Import(ctx, tables)
				if err != nil {
					return err
				}
				return writeImported(cmd.OutOrStdout(), ds.Fingerprint, created)

			case config.SourceSQLite:
				src, closeSrc, err := openSource(ctx, a.cfg, target)
				if err != nil {
					return err
				}
				defer closeSrc()
				snap, created, err := src.(*store.Store).Save(ctx, tables)
				if err != nil {
					return err
				}
				return writeImported(cmd.OutOrStdout(), snap.Fingerprint, created)

			default:
				return fmt.Errorf("%w: import target must be %s or %s, got %q",
					config.ErrInvalidConfig, config.SourcePostgres, config.SourceSQLite, target)
			}
		},
	}
	cmd.Flags().StringVar(&target, "to", "", "postgres or sqlite (default: configured source)")
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [NAME]",
		Short: "List weapons, or the affinities of one weapon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			var t report.Table
			if len(args) == 0 {
				t = weaponTable(tables)
			} else {
				t, err = affinityTable(tables, args[0])
				if err != nil {
					return err
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check game data tables for dangling references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables, err := a.loadTables(cmd.Context())
			if err != nil {
				return err
			}
			fp, err := data.Fingerprint(tables)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d armaments, fingerprint %s\n", len(tables.Armaments), fp)
			return err
		},
	}
}

// parseAttrs parses "str,dex,int,fai,arc".
func parseAttrs(s string) (model.Attributes, error) {
	parts := strings.Split(s, ",")
	if len(parts) != model.AttributeCount {
		return model.Attributes{}, fmt.Errorf("%q: %w", s, errBadAttrs)
	}
	var attrs model.Attributes
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return model.Attributes{}, fmt.Errorf("%q: %w", s, errBadAttrs)
		}
		attrs[i] = v
	}
	return attrs, nil
}

func warnUnmet(r armament.Result) {
	if len(r.Unmet) == 0 {
		return
	}
	slog.Warn("requirements not met, penalty applied",
		"armament", r.Build.Identity.String(),
		"attributes", r.Build.Attributes.String(),
		"unmet", fmt.Sprint(r.Unmet))
}

func writeResult(w io.Writer, r armament.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%s)\n\n", r.Build.Identity, r.Build.Attributes)
	b.WriteString(report.AttackPower(r.AttackPower).String())
	if st := report.StatusEffects(r.StatusEffects); len(st.Rows) > 0 {
		b.WriteString("\n")
		b.WriteString(st.String())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeImported(w io.Writer, fingerprint string, created bool) error {
	status := "imported"
	if !created {
		status = "already present"
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", status, fingerprint)
	return err
}

func weaponTable(tables *data.Tables) report.Table {
	t := report.Table{Headers: []string{"weapon", "affinities", "requirements"}}
	for _, name := range tables.Names() {
		arm := tables.Armaments[name]
		affs := tables.Affinities(name)
		names := make([]string, len(affs))
		for i, af := range affs {
			names[i] = af.String()
		}
		var req model.Attributes
		for attr, v := range arm.Requirements {
			req[attr] = v
		}
		t.Rows = append(t.Rows, []string{name, strings.Join(names, ", "), req.String()})
	}
	return t
}

func affinityTable(tables *data.Tables, name string) (report.Table, error) {
	arm, ok := tables.Armaments[name]
	if !ok {
		return report.Table{}, fmt.Errorf("%w: %q", armament.ErrUnknownArmament, name)
	}
	t := report.Table{
		Headers:    []string{"affinity", "max level", "reinforcement", "correction"},
		RightAlign: map[int]bool{1: true, 2: true, 3: true},
	}
	for _, af := range tables.Affinities(name) {
		props := arm.Affinity[af]
		t.Rows = append(t.Rows, []string{
			af.String(),
			"+" + strconv.Itoa(tables.MaxLevel(name, af)),
			strconv.Itoa(int(props.ReinforcementID)),
			strconv.Itoa(int(props.CorrectionAttackID)),
		})
	}
	return t, nil
}
