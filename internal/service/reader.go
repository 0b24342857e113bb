package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Ambition09/meeshodashboard/internal/model"
	"github.com/Ambition09/meeshodashboard/pkg/utils"
)

var (
	// ErrUnsupportedFormat the file extension is neither csv nor xlsx
	ErrUnsupportedFormat = errors.New("unsupported file format, want .csv or .xlsx")
	// ErrEmptyFile the export has no rows at all
	ErrEmptyFile = errors.New("file is empty")
	// ErrInvalidValue a cell could not be read in strict mode
	ErrInvalidValue = errors.New("invalid value")
)

// MissingColumnsError the header row lacks required columns
type MissingColumnsError struct {
	File    string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing columns %s", e.File, strings.Join(e.Columns, ", "))
}

// Reader parses seller exports into records
type Reader struct {
	// Strict rejects non-numeric settlement amounts instead of reading them as 0
	Strict bool
	// HeaderScanRows is how many leading rows may precede the header. The orders workbook has a title row.
	HeaderScanRows int
}

// NewReader creates a reader
func NewReader(strict bool, headerScanRows int) *Reader {
	if headerScanRows <= 0 {
		headerScanRows = 5
	}
	return &Reader{Strict: strict, HeaderScanRows: headerScanRows}
}

// ReadOrdersFile reads an orders export from disk
func (r *Reader) ReadOrdersFile(path string) ([]model.OrderRecord, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.ReadOrders(filepath.Base(path), f)
}

// ReadClaimsFile reads a claims export from disk
func (r *Reader) ReadClaimsFile(path string) ([]model.ClaimRecord, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return r.ReadClaims(filepath.Base(path), f)
}

// ReadOrders parses an orders export. name decides the format by extension.
func (r *Reader) ReadOrders(name string, src io.Reader) ([]model.OrderRecord, error) {
	rows, err := readRows(name, src)
	if err != nil {
		return nil, err
	}
	header, index, err := r.locateHeader(name, rows, model.ColumnSupplierSKU, model.ColumnLiveOrderStatus, model.ColumnSettlement)
	if err != nil {
		return nil, err
	}

	var records []model.OrderRecord
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		raw := utils.GetStringValue(row, index[model.ColumnSettlement])
		var settlement decimal.Decimal
		if r.Strict {
			settlement, err = utils.ParseDecimalStrict(raw)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %s %w: %v", name, i+1, model.ColumnSettlement, ErrInvalidValue, err)
			}
		} else {
			settlement = utils.StringToDecimal(raw)
		}
		records = append(records, model.OrderRecord{
			SKU:        utils.GetStringValue(row, index[model.ColumnSupplierSKU]),
			Status:     utils.GetStringValue(row, index[model.ColumnLiveOrderStatus]),
			Settlement: settlement,
		})
	}
	log.Infof("%s: read %d order rows", name, len(records))
	return records, nil
}

// ReadClaims parses a claims export
func (r *Reader) ReadClaims(name string, src io.Reader) ([]model.ClaimRecord, error) {
	rows, err := readRows(name, src)
	if err != nil {
		return nil, err
	}
	header, index, err := r.locateHeader(name, rows, model.ColumnClaimSKU, model.ColumnTicketStatus, model.ColumnLastUpdate)
	if err != nil {
		return nil, err
	}

	var records []model.ClaimRecord
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		records = append(records, model.ClaimRecord{
			SKU:          utils.GetStringValue(row, index[model.ColumnClaimSKU]),
			TicketStatus: utils.GetStringValue(row, index[model.ColumnTicketStatus]),
			UpdateText:   utils.GetStringValue(row, index[model.ColumnLastUpdate]),
		})
	}
	log.Infof("%s: read %d claim rows", name, len(records))
	return records, nil
}

// locateHeader finds the first of the leading rows that carries every required column.
func (r *Reader) locateHeader(name string, rows [][]string, columns ...string) (int, map[string]int, error) {
	if len(rows) == 0 {
		return 0, nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}
	scan := r.HeaderScanRows
	if scan <= 0 || scan > len(rows) {
		scan = len(rows)
	}

	var firstMissing []string
	for i := 0; i < scan; i++ {
		index, missing := utils.HeaderIndex(rows[i], columns...)
		if len(missing) == 0 {
			return i, index, nil
		}
		if i == 0 {
			firstMissing = missing
		}
	}
	return 0, nil, &MissingColumnsError{File: name, Columns: firstMissing}
}

// IsBadInput reports whether err was caused by the content of an export
func IsBadInput(err error) bool {
	var missing *MissingColumnsError
	return errors.As(err, &missing) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidValue)
}

func readRows(name string, src io.Reader) ([][]string, error) {
	switch utils.FileExt(name) {
	case ".csv":
		return readCSV(src)
	case ".xlsx", ".xlsm":
		return readWorkbook(src)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
}

func readCSV(src io.Reader) ([][]string, error) {
	// exports saved from Excel start with a UTF-8 BOM
	decoded := transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readWorkbook(src io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Debugf("close workbook: %v", err)
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
