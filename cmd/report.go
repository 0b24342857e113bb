/*
Copyright © 2026 Ambition09
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Ambition09/meeshodashboard/internal/config"
	"github.com/Ambition09/meeshodashboard/internal/database"
	"github.com/Ambition09/meeshodashboard/internal/model"
	"github.com/Ambition09/meeshodashboard/internal/service"
	"github.com/Ambition09/meeshodashboard/pkg/utils"
)

var (
	reportOrders  string
	reportClaims  string
	reportOut     string
	reportID      string
	reportRuleset string
	reportSortBy  string
	reportStrict  bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Reconcile exports and write an Excel report",
	Long: `Reads the orders export (csv or xlsx) and the claims export, prints the per-SKU
tables and the totals, and writes a report workbook to {out}/{year}/{month}.
The grand total is only computed when both exports are given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if reportOrders == "" && reportClaims == "" {
			return errors.New("请提供导出文件：例如 `meeshodash report --orders orders.xlsx --claims claims.csv`")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.GetConfig()
		if cmd.Flags().Changed("out") {
			cfg.Report.Dir = reportOut
		}
		if cmd.Flags().Changed("ruleset") {
			cfg.Rules.Ruleset = reportRuleset
			cfg.Rules.RealizedStatuses = nil
		}
		if cmd.Flags().Changed("sort-by") {
			cfg.Report.SortBy = reportSortBy
		}
		if cmd.Flags().Changed("strict") {
			cfg.Rules.Strict = reportStrict
		}

		reconciler, err := newReconciler(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.CloseDB() }()

		log.Infof("reconciling orders=%q claims=%q", reportOrders, reportClaims)
		out, err := reconciler.ReconcileFiles(reportOrders, reportClaims)
		if err != nil {
			return err
		}

		filename, err := service.WriteOutcome(cfg.Report.Dir, reportID, out)
		if err != nil {
			return err
		}
		path, err := utils.GetFilePathByFilename(cfg.Report.Dir, filename, service.TimeLayout)
		if err != nil {
			return err
		}

		printOutcome(cmd.OutOrStdout(), out)
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportOrders, "orders", "o", "", "orders export, .csv or .xlsx")
	reportCmd.Flags().StringVarP(&reportClaims, "claims", "c", "", "claims export, .csv or .xlsx")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "report root directory (default report.dir)")
	reportCmd.Flags().StringVar(&reportID, "id", "", "report id used in the file name (default a random uuid)")
	reportCmd.Flags().StringVar(&reportRuleset, "ruleset", "", "realized-sale rules: baseline | extended")
	reportCmd.Flags().StringVar(&reportSortBy, "sort-by", "", "row order: sku | net-profit | revenue (default first appearance)")
	reportCmd.Flags().BoolVar(&reportStrict, "strict", false, "fail on non-numeric settlement amounts instead of reading them as 0")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func printOutcome(w io.Writer, out *service.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	if out.Orders != nil {
		fmt.Fprintln(tw, "SKU\t"+strings.Join(out.Orders.Statuses, "\t")+"\tRevenue\tPurchase\tNet Profit\tReturn %\t")
		for _, s := range out.Orders.Summaries {
			fmt.Fprintf(tw, "%s\t", s.SKU)
			for _, status := range out.Orders.Statuses {
				fmt.Fprintf(tw, "%d\t", s.Count(status))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", money(s.Revenue), money(s.TotalPurchase), money(s.NetProfit), money(s.ReturnPercent))
		}
		k := out.OrderKPI
		fmt.Fprintf(tw, "\nDelivered %d\tRevenue %s\tPurchase %s\tProfit %s\t\n\n", k.Delivered, money(k.Revenue), money(k.Purchase), money(k.Profit))
	}

	if out.Claims != nil {
		fmt.Fprintln(tw, "SKU\tApproved\tRejected\tClaim Received\tApproved Profit\tRejected Loss\tNet Claim\t")
		for _, s := range out.Claims.Summaries {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t\n", s.SKU, s.ApprovedQty, s.RejectedQty,
				money(s.ClaimReceived), money(s.ApprovedProfit), money(s.RejectedLoss), money(s.NetClaim))
		}
		k := out.ClaimKPI
		fmt.Fprintf(tw, "\nClaim %s\tLoss %s\tNet %s\t\n", money(k.ClaimReceived), money(k.RejectedLoss), money(k.NetClaim))
		if out.Claims.Ignored > 0 {
			fmt.Fprintf(tw, "%d claims neither %s nor %s were not counted\t\n", out.Claims.Ignored, model.TicketApproved, model.TicketRejected)
		}
	}

	if out.GrandTotal != nil {
		fmt.Fprintf(tw, "\nGrand Total %s\t\n", money(*out.GrandTotal))
	}
}
