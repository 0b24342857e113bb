package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Ambition09/meeshodashboard/internal/config"
	"github.com/Ambition09/meeshodashboard/internal/engine"
	"github.com/Ambition09/meeshodashboard/internal/model"
	"github.com/Ambition09/meeshodashboard/pkg/utils"
)

// TimeLayout timestamp suffix of report file names
const TimeLayout = utils.DefaultTimeLayout

// ErrNoInput neither an orders nor a claims file was given
var ErrNoInput = errors.New("an orders file or a claims file is required")

// Source a named export stream. The name decides the format.
type Source struct {
	Name string
	Body io.Reader
}

// Outcome result of one reconciliation pass
type Outcome struct {
	Orders     *model.OrderReport
	Claims     *model.ClaimReport
	OrderKPI   *model.OrderKPI
	ClaimKPI   *model.ClaimKPI
	GrandTotal *decimal.Decimal
}

// NewReconciler builds a reconciler from the configuration. extraCosts override every other cost source.
func NewReconciler(cfg *config.Config, extraCosts map[string]decimal.Decimal) (*Reconciler, error) {
	costs, err := cfg.BuildCostTable(extraCosts)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.BuildRuleset()
	if err != nil {
		return nil, err
	}
	extractor, err := cfg.BuildAmountExtractor()
	if err != nil {
		return nil, fmt.Errorf("amount pattern: %w", err)
	}
	sortBy, err := engine.ParseSortBy(cfg.Report.SortBy)
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		Costs:     costs,
		Rules:     rules,
		Extractor: extractor,
		Reader:    NewReader(cfg.Rules.Strict, cfg.Report.HeaderScanRows),
		SortBy:    sortBy,
	}, nil
}

// Reconciler runs the engine over seller exports
type Reconciler struct {
	Costs     *engine.CostTable
	Rules     engine.Ruleset
	Extractor *engine.AmountExtractor
	Reader    *Reader
	SortBy    engine.SortBy
}

// Reconcile aggregates whichever exports are given. The grand total is only set when both are.
func (r *Reconciler) Reconcile(orders, claims *Source) (*Outcome, error) {
	if orders == nil && claims == nil {
		return nil, ErrNoInput
	}
	out := &Outcome{}

	if orders != nil {
		records, err := r.Reader.ReadOrders(orders.Name, orders.Body)
		if err != nil {
			return nil, err
		}
		report := engine.NewOrderAggregator(r.Costs, r.Rules).Aggregate(records)
		if report.Dropped > 0 {
			log.Warnf("%s: dropped %d rows without %s or %s", orders.Name, report.Dropped,
				model.ColumnSupplierSKU, model.ColumnLiveOrderStatus)
		}
		r.warnUnmapped(orders.Name, report)
		engine.SortOrderSummaries(report.Summaries, r.SortBy)
		kpi := engine.SummarizeOrders(report)
		out.Orders, out.OrderKPI = report, &kpi
	}

	if claims != nil {
		records, err := r.Reader.ReadClaims(claims.Name, claims.Body)
		if err != nil {
			return nil, err
		}
		report := engine.NewClaimsAggregator(r.Costs, r.Extractor).Aggregate(records)
		if report.Ignored > 0 {
			log.Warnf("%s: %d claims are neither %s nor %s and were not counted", claims.Name, report.Ignored,
				model.TicketApproved, model.TicketRejected)
		}
		if report.Dropped > 0 {
			log.Warnf("%s: dropped %d claims without SKU", claims.Name, report.Dropped)
		}
		engine.SortClaimSummaries(report.Summaries, r.SortBy)
		kpi := engine.SummarizeClaims(report)
		out.Claims, out.ClaimKPI = report, &kpi
	}

	if total, ok := engine.Reconcile(out.Orders, out.Claims); ok {
		out.GrandTotal = &total
	}
	return out, nil
}

// ReconcileFiles is Reconcile over files on disk. Empty paths are skipped.
func (r *Reconciler) ReconcileFiles(ordersPath, claimsPath string) (*Outcome, error) {
	open := func(path string) (*Source, func(), error) {
		if path == "" {
			return nil, func() {}, nil
		}
		f, err := openFile(path)
		if err != nil {
			return nil, nil, err
		}
		return &Source{Name: filepath.Base(path), Body: f}, func() { _ = f.Close() }, nil
	}

	orders, closeOrders, err := open(ordersPath)
	if err != nil {
		return nil, err
	}
	defer closeOrders()
	claims, closeClaims, err := open(claimsPath)
	if err != nil {
		return nil, err
	}
	defer closeClaims()

	return r.Reconcile(orders, claims)
}

func (r *Reconciler) warnUnmapped(name string, report *model.OrderReport) {
	var unmapped []string
	for _, s := range report.Summaries {
		if !r.Costs.Has(s.SKU) {
			unmapped = append(unmapped, s.SKU)
		}
	}
	if len(unmapped) > 0 {
		log.Warnf("%s: %d skus have no purchase cost and are priced at 0: %s", name, len(unmapped), strings.Join(unmapped, ", "))
	}
}

// ReportFilename REPORT_{id}_{timestamp}.xlsx. Characters other than letters, digits and '-' in id become '-'.
func ReportFilename(id string, at time.Time) string {
	id = strings.Map(func(r rune) rune {
		if r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return '-'
	}, id)
	return fmt.Sprintf("REPORT_%s_%s.xlsx", id, at.Format(TimeLayout))
}

// WriteOutcome writes the outcome into rootDir/{year}/{month} and returns the file name
func WriteOutcome(rootDir, id string, out *Outcome) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now()
	filename := ReportFilename(id, now)

	path, err := utils.GetFilePathByFilename(rootDir, filename, TimeLayout)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); !utils.IsDir(dir) && !utils.CreateDir(dir) {
		return "", fmt.Errorf("create report directory failed: %s", dir)
	}

	err = WriteReport(path, &ReportData{
		Orders:      out.Orders,
		Claims:      out.Claims,
		OrderKPI:    out.OrderKPI,
		ClaimKPI:    out.ClaimKPI,
		GrandTotal:  out.GrandTotal,
		GeneratedAt: now,
	})
	if err != nil {
		return "", err
	}
	return filename, nil
}

// ToResult converts the outcome into the API body
func (o *Outcome) ToResult(filename string) *model.ReportResult {
	return &model.ReportResult{
		ReportFilename: filename,
		Orders:         o.Orders,
		Claims:         o.Claims,
		OrderKPI:       o.OrderKPI,
		ClaimKPI:       o.ClaimKPI,
		GrandTotal:     o.GrandTotal,
	}
}

// Publisher sends a response body to the response queue
type Publisher func(ctx context.Context, body []byte) error

// ReportService handles report requests arriving over RabbitMQ
type ReportService struct {
	Reconciler *Reconciler
	ReportDir  string
	Publish    Publisher
}

// HandleReportRequest generates the report for one request message and publishes the response.
// It always returns nil so a broken request is not redelivered forever.
func (s *ReportService) HandleReportRequest(ctx context.Context, body []byte) error {
	resp := s.Generate(body)

	b, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal report response failed, err:%v", err)
		return nil
	}
	if s.Publish == nil {
		log.Infof("report response: %s", b)
		return nil
	}
	if err := s.Publish(ctx, b); err != nil {
		log.Errorf("publish report response for %s failed, err:%v", resp.RequestId, err)
	}
	return nil
}

// Generate runs one request and never fails: errors are reported in the response
func (s *ReportService) Generate(body []byte) model.ResponseForReport {
	var req model.RequestForReport
	if err := json.Unmarshal(body, &req); err != nil {
		log.Errorf("unmarshal report request failed, err:%v", err)
		return model.ResponseForReport{Status: model.StatusFailed, Error: "invalid request: " + err.Error()}
	}
	if req.RequestId == "" {
		req.RequestId = uuid.NewString()
	}
	resp := model.ResponseForReport{RequestId: req.RequestId}

	log.Infof("generating report %s, orders=%q, claims=%q", req.RequestId, req.OrdersFile, req.ClaimsFile)
	out, err := s.Reconciler.ReconcileFiles(req.OrdersFile, req.ClaimsFile)
	if err != nil {
		log.Errorf("reconcile %s failed, err:%v", req.RequestId, err)
		resp.Status, resp.Error = model.StatusFailed, err.Error()
		return resp
	}

	filename, err := WriteOutcome(s.ReportDir, req.RequestId, out)
	if err != nil {
		log.Errorf("write report %s failed, err:%v", req.RequestId, err)
		resp.Status, resp.Error = model.StatusFailed, err.Error()
		return resp
	}

	resp.Status = model.StatusSuccess
	resp.ReportFilename = filename
	resp.GrandTotal = out.GrandTotal
	return resp
}
