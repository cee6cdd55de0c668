package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"Aeroperf/internal/calc/solve"

	"github.com/spf13/cobra"
)

func newRelationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "relations",
		Short: "List the composite relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, r := range solve.Relations(a.engine) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, strings.Join(r.Refs, ","), r.Description)
			}
			return tw.Flush()
		},
	}
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List catalog entries and the formulas each one solves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range solve.Entries(a.engine) {
				formulas := strings.Join(e.Formulas, " ")
				if formulas == "" {
					formulas = "(chart only)"
				}
				fmt.Fprintf(tw, "%s\t%s\n", e.Ref, formulas)
			}
			return tw.Flush()
		},
	}
}
