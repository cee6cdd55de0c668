package main

import (
	"fmt"
	"strconv"
	"strings"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/config"

	"github.com/spf13/cobra"
)

// app is filled in before any subcommand runs.
type app struct {
	cfg    config.Config
	engine *perf.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "perfcalc",
		Short:         "Aircraft performance relation solver",
		Long:          "perfcalc derives unknown flight quantities from known ones using the handbook relations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("config-dir")
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			engine, err := perf.New(cfg.Constants)
			if err != nil {
				return err
			}
			a.cfg, a.engine = cfg, engine
			return nil
		},
	}
	root.PersistentFlags().String("config-dir", "", "directory holding .env and aeroperf.yaml (default .)")

	root.AddCommand(
		newSolveCmd(a),
		newRelationsCmd(a),
		newCatalogCmd(a),
		newSweepCmd(a),
		newImportCmd(a),
		newHashKeyCmd(),
	)
	return root
}

// parseAssignments turns name=value pairs into a record.
func parseAssignments(pairs []string) (formula.Record, error) {
	rec := formula.Record{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if !ok || name == "" {
			return nil, fmt.Errorf("bad assignment %q, want name=value", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("bad value for %s: %w", name, err)
		}
		rec[name] = v
	}
	return rec, nil
}
