package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ambition09/meeshodashboard/internal/engine"
	"github.com/Ambition09/meeshodashboard/internal/model"
	"github.com/Ambition09/meeshodashboard/internal/service"
)

const (
	ordersCSV = "Supplier SKU,Live Order Status,Final Settlement Amount\n" +
		"A,Delivered,500\n" +
		"A,Return,0\n" +
		"A,Delivered,600\n"
	claimsCSV = "SKU,Ticket Status,Last Update\n" +
		"A,Approved,Rs 900\n" +
		"A,Rejected,\n"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dir := t.TempDir()
	return &Handler{
		Reconciler: &service.Reconciler{
			Costs:     engine.NewCostTable(map[string]decimal.Decimal{"a": decimal.NewFromInt(850)}),
			Rules:     engine.BaselineRuleset(),
			Extractor: engine.MustAmountExtractor(engine.DefaultAmountPattern()),
			Reader:    service.NewReader(false, 5),
		},
		ReportDir: filepath.Join(dir, "reports"),
		UploadDir: filepath.Join(dir, "uploads"),
	}
}

func multipartBody(t *testing.T, files map[string][2]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, file := range files {
		part, err := w.CreateFormFile(field, file[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(file[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postReport(t *testing.T, e *echo.Echo, files map[string][2]string) *httptest.ResponseRecorder {
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/v1/report", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	return serve(e, req)
}

func TestCreateReport(t *testing.T) {
	h := newTestHandler(t)
	e := SetupRoutes(h)

	rec := postReport(t, e, map[string][2]string{
		"orders": {"orders.csv", ordersCSV},
		"claims": {"claims.csv", claimsCSV},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.ReportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.GrandTotal)
	assert.True(t, decimal.NewFromInt(-1400).Equal(*result.GrandTotal), result.GrandTotal.String())
	require.NotNil(t, result.Orders)
	require.Len(t, result.Orders.Summaries, 1)
	assert.Equal(t, 1, result.Orders.Summaries[0].Count(model.StatusReturn))
	assert.NotEmpty(t, result.ReportFilename)

	uploads, err := os.ReadDir(h.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, uploads, "uploads are removed once the report is written")

	// the generated workbook can be downloaded
	req := httptest.NewRequest(http.MethodGet, "/v1/report/"+result.ReportFilename+"?download=1", nil)
	rec = serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.NotZero(t, rec.Body.Len())
}

func TestCreateReport_OrdersOnly(t *testing.T) {
	e := SetupRoutes(newTestHandler(t))

	rec := postReport(t, e, map[string][2]string{"orders": {"orders.csv", ordersCSV}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result model.ReportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Nil(t, result.GrandTotal)
	assert.Nil(t, result.Claims)
}

func TestCreateReport_BadInput(t *testing.T) {
	e := SetupRoutes(newTestHandler(t))

	rec := postReport(t, e, map[string][2]string{"claims": {"claims.csv", claimsCSV}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postReport(t, e, map[string][2]string{"orders": {"orders.csv", "SKU,Status\nA,Delivered\n"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ColumnSupplierSKU)

	rec = postReport(t, e, map[string][2]string{"orders": {"orders.pdf", ordersCSV}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadReport_Errors(t *testing.T) {
	h := newTestHandler(t)
	require.NoError(t, os.MkdirAll(h.ReportDir, 0o755))
	e := SetupRoutes(h)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/report/report.xlsx", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/v1/report/REPORT_x_20260101000000.xlsx", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCosts(t *testing.T) {
	e := SetupRoutes(newTestHandler(t))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/v1/costs", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []engine.CostEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].SKU)
	assert.True(t, decimal.NewFromInt(850).Equal(entries[0].UnitCost))
}
