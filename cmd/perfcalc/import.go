package main

import (
	"encoding/json"
	"os"

	"Aeroperf/internal/calc/importer"
	"Aeroperf/internal/calc/perf"

	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Solve every row of a workbook whose first row names the quantities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("target")
			sheet, _ := cmd.Flags().GetString("sheet")
			settle, _ := cmd.Flags().GetBool("settle")

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			recs, skipped, err := importer.ReadXLSX(f, sheet)
			if err != nil {
				return err
			}
			res, err := importer.Calculate(a.engine, recs, skipped, target, settle, a.cfg.SettlePasses)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().String("target", perf.StepAll, "catalog ref, relation name or \"all\"")
	cmd.Flags().String("sheet", "", "sheet to read (default first)")
	cmd.Flags().Bool("settle", false, "repeat whole-catalog passes until nothing new is derived")
	return cmd
}
