package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/Ambition09/meeshodashboard/internal/model"
	"github.com/Ambition09/meeshodashboard/pkg/utils"
)

const (
	SheetSummary = "Summary"
	SheetSales   = "Sales"
	SheetClaims  = "Claims"
)

// reportStyles cell styles shared by all sheets
type reportStyles struct {
	header int
	money  int
	green  int
	red    int
}

func newReportStyles(f *excelize.File) (*reportStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "#D9D9D9", Style: 1},
		{Type: "top", Color: "#D9D9D9", Style: 1},
		{Type: "bottom", Color: "#D9D9D9", Style: 1},
		{Type: "right", Color: "#D9D9D9", Style: 1},
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}

	var (
		s   reportStyles
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      fill("#DDEBF7"),
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: 4, Border: border}); err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	// 绿色：盈利
	if s.green, err = f.NewStyle(&excelize.Style{NumFmt: 4, Border: border, Fill: fill("#C6EFCE")}); err != nil {
		return nil, fmt.Errorf("create green style: %w", err)
	}
	// 红色：亏损
	if s.red, err = f.NewStyle(&excelize.Style{NumFmt: 4, Border: border, Fill: fill("#FFC7CE")}); err != nil {
		return nil, fmt.Errorf("create red style: %w", err)
	}
	return &s, nil
}

func (s *reportStyles) profit(d decimal.Decimal) int {
	if d.IsPositive() {
		return s.green
	}
	return s.red
}

// ReportData everything that goes into one report workbook
type ReportData struct {
	Orders      *model.OrderReport
	Claims      *model.ClaimReport
	OrderKPI    *model.OrderKPI
	ClaimKPI    *model.ClaimKPI
	GrandTotal  *decimal.Decimal
	GeneratedAt time.Time
}

// WriteReport writes the summary, sales and claims sheets to path
func WriteReport(path string, data *ReportData) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Debugf("close report workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}

	salesRows := 0
	if data.Orders != nil {
		if salesRows, err = writeSalesSheet(f, styles, data.Orders); err != nil {
			return fmt.Errorf("write sales sheet: %w", err)
		}
	}
	if data.Claims != nil {
		if err := writeClaimsSheet(f, styles, data.Claims); err != nil {
			return fmt.Errorf("write claims sheet: %w", err)
		}
	}
	if err := writeSummarySheet(f, styles, data, salesRows); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	log.Infof("report written to %s", path)
	return nil
}

func writeHeader(f *excelize.File, styles *reportStyles, sheet string, row int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := utils.SetRow(f, sheet, row, values); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, utils.CellName(1, row), utils.CellName(len(headers), row), styles.header)
}

// setColWidths gives column A the first width and the columns up to cols the default width
func setColWidths(f *excelize.File, sheet string, cols int, first float64) error {
	if err := f.SetColWidth(sheet, "A", "A", first); err != nil {
		return err
	}
	if cols < 2 {
		return nil
	}
	return f.SetColWidth(sheet, "B", utils.ColumnName(cols), 16)
}

func setMoney(f *excelize.File, sheet string, col, row int, d decimal.Decimal, style int) error {
	cell := utils.CellName(col, row)
	if err := f.SetCellFloat(sheet, cell, utils.RoundMoney(d), -1, 64); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

// writeSalesSheet returns the number of data rows written
func writeSalesSheet(f *excelize.File, styles *reportStyles, report *model.OrderReport) (int, error) {
	if _, err := f.NewSheet(SheetSales); err != nil {
		return 0, err
	}

	headers := []string{model.ColumnSupplierSKU}
	headers = append(headers, report.Statuses...)
	headers = append(headers, "Purchase Cost", "Total Purchase", "Revenue", "Net Profit", "Return %")
	if err := writeHeader(f, styles, SheetSales, 1, headers); err != nil {
		return 0, err
	}
	if err := setColWidths(f, SheetSales, len(headers), 28); err != nil {
		return 0, err
	}

	for i, s := range report.Summaries {
		row := i + 2
		values := []interface{}{s.SKU}
		for _, status := range report.Statuses {
			values = append(values, s.Count(status))
		}
		if err := utils.SetRow(f, SheetSales, row, values); err != nil {
			return 0, err
		}

		col := len(values) + 1
		money := []struct {
			v     decimal.Decimal
			style int
		}{
			{s.PurchaseCost, styles.money},
			{s.TotalPurchase, styles.money},
			{s.Revenue, styles.money},
			{s.NetProfit, styles.profit(s.NetProfit)},
			{s.ReturnPercent, styles.money},
		}
		for j, m := range money {
			if err := setMoney(f, SheetSales, col+j, row, m.v, m.style); err != nil {
				return 0, err
			}
		}
	}
	return len(report.Summaries), nil
}

func writeClaimsSheet(f *excelize.File, styles *reportStyles, report *model.ClaimReport) error {
	if _, err := f.NewSheet(SheetClaims); err != nil {
		return err
	}
	headers := []string{"SKU", "Approved Qty", "Rejected Qty", "Purchase Cost", "Claim Received", "Approved Profit", "Rejected Loss", "Net Claim"}
	if err := writeHeader(f, styles, SheetClaims, 1, headers); err != nil {
		return err
	}
	if err := setColWidths(f, SheetClaims, len(headers), 28); err != nil {
		return err
	}

	for i, s := range report.Summaries {
		row := i + 2
		if err := utils.SetRow(f, SheetClaims, row, []interface{}{s.SKU, s.ApprovedQty, s.RejectedQty}); err != nil {
			return err
		}
		amounts := []decimal.Decimal{s.PurchaseCost, s.ClaimReceived, s.ApprovedProfit, s.RejectedLoss}
		for j, d := range amounts {
			if err := setMoney(f, SheetClaims, 4+j, row, d, styles.money); err != nil {
				return err
			}
		}
		if err := setMoney(f, SheetClaims, 8, row, s.NetClaim, styles.profit(s.NetClaim)); err != nil {
			return err
		}
	}

	if report.Ignored > 0 {
		note := fmt.Sprintf("%d claims with a status other than Approved or Rejected were not counted", report.Ignored)
		if err := f.SetCellStr(SheetClaims, utils.CellName(1, len(report.Summaries)+3), note); err != nil {
			return err
		}
	}
	return nil
}

// summary layout: KPI block from row 1, status breakdown from row 12 feeding the pie chart
const statusBlockRow = 12

const summaryLabelWidth = 24

func writeSummarySheet(f *excelize.File, styles *reportStyles, data *ReportData, salesRows int) error {
	sheet := SheetSummary
	if err := writeHeader(f, styles, sheet, 1, []string{"Metric", "Value"}); err != nil {
		return err
	}
	if err := setColWidths(f, sheet, 2, summaryLabelWidth); err != nil {
		return err
	}

	row := 2
	put := func(label string, d decimal.Decimal, style int) error {
		if err := f.SetCellStr(sheet, utils.CellName(1, row), label); err != nil {
			return err
		}
		if err := setMoney(f, sheet, 2, row, d, style); err != nil {
			return err
		}
		row++
		return nil
	}

	if k := data.OrderKPI; k != nil {
		if err := utils.SetRow(f, sheet, row, []interface{}{"Delivered", k.Delivered}); err != nil {
			return err
		}
		row++
		if err := put("Revenue ₹", k.Revenue, styles.money); err != nil {
			return err
		}
		if err := put("Purchase ₹", k.Purchase, styles.money); err != nil {
			return err
		}
		if err := put("Profit ₹", k.Profit, styles.profit(k.Profit)); err != nil {
			return err
		}
	}
	if k := data.ClaimKPI; k != nil {
		if err := put("Claim ₹", k.ClaimReceived, styles.money); err != nil {
			return err
		}
		if err := put("Loss ₹", k.RejectedLoss, styles.money); err != nil {
			return err
		}
		if err := put("Net ₹", k.NetClaim, styles.profit(k.NetClaim)); err != nil {
			return err
		}
	}
	if data.GrandTotal != nil {
		if err := put("Grand Total ₹", *data.GrandTotal, styles.profit(*data.GrandTotal)); err != nil {
			return err
		}
	}
	if !data.GeneratedAt.IsZero() {
		if err := f.SetCellStr(sheet, utils.CellName(1, row+1), "Generated at "+data.GeneratedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	if data.OrderKPI == nil || salesRows == 0 {
		return nil
	}
	return addCharts(f, styles, data.OrderKPI, data.Orders, salesRows)
}

func addCharts(f *excelize.File, styles *reportStyles, kpi *model.OrderKPI, orders *model.OrderReport, salesRows int) error {
	sheet := SheetSummary
	if err := writeHeader(f, styles, sheet, statusBlockRow, []string{"Status", "Orders"}); err != nil {
		return err
	}
	breakdown := [][]interface{}{
		{model.StatusDelivered, kpi.Delivered},
		{model.StatusReturn, kpi.Return},
		{model.StatusRTO, kpi.RTO},
	}
	for i, values := range breakdown {
		if err := utils.SetRow(f, sheet, statusBlockRow+1+i, values); err != nil {
			return err
		}
	}

	first, last := statusBlockRow+1, statusBlockRow+len(breakdown)
	if err := f.AddChart(sheet, "D2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$%d", sheet, statusBlockRow),
			Categories: fmt.Sprintf("%s!$A$%d:$A$%d", sheet, first, last),
			Values:     fmt.Sprintf("%s!$B$%d:$B$%d", sheet, first, last),
		}},
		Title: []excelize.RichTextRun{{Text: "Order status"}},
		PlotArea: excelize.ChartPlotArea{
			ShowPercent: true,
		},
	}); err != nil {
		return fmt.Errorf("add status chart: %w", err)
	}

	netProfitCol := utils.ColumnName(1 + len(orders.Statuses) + 4)
	if err := f.AddChart(sheet, "D20", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", SheetSales, netProfitCol),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetSales, salesRows+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetSales, netProfitCol, netProfitCol, salesRows+1),
		}},
		Title:  []excelize.RichTextRun{{Text: "Net profit by SKU"}},
		Legend: excelize.ChartLegend{Position: "none"},
	}); err != nil {
		return fmt.Errorf("add profit chart: %w", err)
	}
	return nil
}
