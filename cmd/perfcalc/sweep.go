package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"Aeroperf/internal/calc/perf"
	"Aeroperf/internal/calc/report"
	"Aeroperf/internal/calc/sweep"

	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sweep",
		Short:   "Tabulate point performance across an airspeed range",
		Example: "  perfcalc sweep --set ws=300 --set rho=1.225 --set e=0.85 --set ar=20 --set cd0=0.012 --set s=11 --from 15 --to 45 --step 5",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sets, _ := cmd.Flags().GetStringArray("set")
			from, _ := cmd.Flags().GetFloat64("from")
			to, _ := cmd.Flags().GetFloat64("to")
			step, _ := cmd.Flags().GetFloat64("step")
			plan, _ := cmd.Flags().GetString("plan")
			outputs, _ := cmd.Flags().GetStringSlice("outputs")
			xlsxPath, _ := cmd.Flags().GetString("xlsx")
			pdfPath, _ := cmd.Flags().GetString("pdf")

			base, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			table, err := sweep.Calculate(a.engine, sweep.Input{
				Base: base, From: from, To: to, Step: step, Plan: plan, Outputs: outputs,
			})
			if err != nil {
				return err
			}

			if xlsxPath != "" {
				f, err := os.Create(xlsxPath)
				if err != nil {
					return err
				}
				if err := sweep.WriteXLSX(f, table, base); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
			}
			if pdfPath != "" {
				in := report.Input{Title: "Airspeed Sweep", Record: base, Table: &table}
				if err := writePDF(pdfPath, in); err != nil {
					return err
				}
			}
			return printTable(cmd, table)
		},
	}
	cmd.Flags().StringArray("set", nil, "known quantity as name=value (repeatable)")
	cmd.Flags().Float64("from", 0, "first airspeed, m/s")
	cmd.Flags().Float64("to", 0, "last airspeed, m/s")
	cmd.Flags().Float64("step", 1, "airspeed increment, m/s")
	cmd.Flags().String("plan", perf.PolarPlan.Name, "built-in plan run at each airspeed")
	cmd.Flags().StringSlice("outputs", nil, "columns to tabulate (default "+strings.Join(perf.DefaultSweepOutputs, ",")+")")
	cmd.Flags().String("xlsx", "", "also write the table to this workbook")
	cmd.Flags().String("pdf", "", "also write a PDF report to this path")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printTable(cmd *cobra.Command, t perf.Table) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t")+"\t")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for j, x := range row {
			cells[j] = report.FormatValue(x)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}
