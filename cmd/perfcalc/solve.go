package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"Aeroperf/internal/calc/formula"
	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/calc/report"
	"Aeroperf/internal/calc/solve"

	"github.com/spf13/cobra"
)

func newSolveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run one pass of a catalog entry, relation or the whole catalog",
		Example: `  perfcalc solve --set b=20 --set s=100 --target 1
  perfcalc solve --set h=1000 --target standard-atmosphere
  perfcalc solve --set m=500 --set s=10 --settle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sets, _ := cmd.Flags().GetStringArray("set")
			target, _ := cmd.Flags().GetString("target")
			plan, _ := cmd.Flags().GetString("plan")
			settle, _ := cmd.Flags().GetBool("settle")
			asJSON, _ := cmd.Flags().GetBool("json")
			pdfPath, _ := cmd.Flags().GetString("pdf")

			rec, err := parseAssignments(sets)
			if err != nil {
				return err
			}

			in := solve.Input{Record: rec, Target: target, Settle: settle}
			if plan != "" {
				in.Target, in.Plan = "", plan
			}
			res, err := solve.Calculate(a.engine, in, a.cfg.SettlePasses)
			if err != nil {
				return err
			}

			if pdfPath != "" {
				if err := writePDF(pdfPath, report.Input{Title: "Performance Report", Record: res.Record}); err != nil {
					return err
				}
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return printRecord(cmd.OutOrStdout(), res.Record, rec)
		},
	}
	cmd.Flags().StringArray("set", nil, "known quantity as name=value (repeatable)")
	cmd.Flags().String("target", perf.StepAll, "catalog ref (12, A3), relation name or \"all\"")
	cmd.Flags().String("plan", "", "run a built-in plan instead of a single target")
	cmd.Flags().Bool("settle", false, "repeat whole-catalog passes until nothing new is derived")
	cmd.Flags().Bool("json", false, "print the result as JSON")
	cmd.Flags().String("pdf", "", "also write a PDF report to this path")
	cmd.MarkFlagsMutuallyExclusive("plan", "settle")
	cmd.MarkFlagsMutuallyExclusive("plan", "target")
	return cmd
}

// printRecord lists every quantity, marking the ones that were given.
func printRecord(w io.Writer, rec, given formula.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range rec.Keys() {
		mark := ""
		if given.Has(k) {
			mark = "(given)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k, report.FormatValue(rec[k]), mark)
	}
	return tw.Flush()
}

func writePDF(path string, in report.Input) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, in, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
