/*
Copyright © 2026 Ambition09
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Ambition09/meeshodashboard/internal/config"
	"github.com/Ambition09/meeshodashboard/internal/database"
)

var costsFormat string

// costsCmd represents the costs command
var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Print the effective purchase cost table",
	Long: `Prints the cost table after merging the built-in defaults, the costs section of
the config file, costs-file and the MySQL sku_purchase_cost table.
With --format yaml the output can be used as a costs-file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reconciler, err := newReconciler(config.GetConfig())
		if err != nil {
			return err
		}
		defer func() { _ = database.CloseDB() }()

		entries := reconciler.Costs.Entries()
		switch costsFormat {
		case "yaml":
			b, err := config.MarshalCostsFile(entries)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		case "table", "":
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SKU\tUNIT COST")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\n", e.SKU, e.UnitCost.StringFixed(2))
			}
			return tw.Flush()
		}
		return fmt.Errorf("unknown format %q, want table or yaml", costsFormat)
	},
}

func init() {
	rootCmd.AddCommand(costsCmd)

	costsCmd.Flags().StringVar(&costsFormat, "format", "table", "output format: table | yaml")
}
