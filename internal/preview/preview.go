// Package preview turns raw statement files into import previews: parsed
// and mapped transactions, aggregate totals, and the validation verdict
// that gates the confirm-import action.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/csvtable"
	"github.com/bankfeed-dev/bankfeed/internal/mapping"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
	"github.com/bankfeed-dev/bankfeed/internal/ofx"
)

// Format identifies a statement file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatOFX Format = "ofx"
)

// Preview is everything the confirmation step needs: the mapped
// transactions, totals by direction, the count of rejected rows, and the
// errors and warnings from validation. Errors block import; warnings are
// advisory.
type Preview struct {
	FileName     string
	Format       Format
	Mapping      mapping.ColumnMapping // CSV only
	Account      *ofx.Result           // OFX only
	Transactions []model.MappedTransaction
	SkippedRows  int
	Deposits     decimal.Decimal
	Withdrawals  decimal.Decimal
	Net          decimal.Decimal
	Errors       []string
	Warnings     []string
}

// Ready reports whether the preview can be confirmed for import.
func (p *Preview) Ready() bool {
	return len(p.Errors) == 0 && len(p.Transactions) > 0
}

// Service builds previews from statement files.
type Service struct {
	logger    *log.Logger
	dateOrder normalize.DateOrder
}

// New creates a preview Service.
func New(logger *log.Logger, dateOrder normalize.DateOrder) *Service {
	return &Service{logger: logger, dateOrder: dateOrder}
}

// FromFile reads a statement file and builds a preview. A nil mapping
// means auto-detection for CSV files; it is ignored for OFX files.
func (s *Service) FromFile(path string, m *mapping.ColumnMapping) (*Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return s.FromBytes(filepath.Base(path), data, m), nil
}

// FromBytes builds a preview from in-memory file content.
func (s *Service) FromBytes(name string, data []byte, m *mapping.ColumnMapping) *Preview {
	format := DetectFormat(name, data)
	s.logger.Debug("detected statement format", "file", name, "format", format)

	if format == FormatOFX {
		return s.ofxPreview(name, data)
	}
	return s.csvPreview(name, string(data), m)
}

func (s *Service) csvPreview(name, content string, m *mapping.ColumnMapping) *Preview {
	p := &Preview{FileName: name, Format: FormatCSV}

	table := csvtable.Parse(content)
	if table.RowCount == 0 {
		p.Errors = append(p.Errors, "no data rows found in file")
		return p
	}

	if m != nil {
		p.Mapping = *m
	} else {
		p.Mapping = mapping.AutoDetect(table.Headers)
	}

	if result := mapping.Validate(p.Mapping); !result.Valid {
		p.Errors = append(p.Errors, result.Errors...)
		return p
	}

	proj := mapping.Project(table.Rows, p.Mapping, mapping.Options{DateOrder: s.dateOrder})
	p.Transactions = proj.Transactions
	p.SkippedRows = len(proj.Skipped)
	if p.SkippedRows > 0 {
		s.logger.Warn("rows rejected during mapping", "file", name, "skipped", p.SkippedRows, "of", table.RowCount)
		p.Warnings = append(p.Warnings, fmt.Sprintf("%d of %d rows could not be mapped and will not be imported", p.SkippedRows, table.RowCount))
	}
	if len(p.Transactions) == 0 {
		p.Errors = append(p.Errors, "no importable transactions found")
		return p
	}

	p.Deposits, p.Withdrawals, p.Net = model.Totals(p.Transactions)
	return p
}

func (s *Service) ofxPreview(name string, data []byte) *Preview {
	p := &Preview{FileName: name, Format: FormatOFX}

	res, err := ofx.Parse(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("OFX parse failed", "file", name, "error", err)
		p.Errors = append(p.Errors, fmt.Sprintf("cannot import file: %v", err))
		return p
	}
	p.Account = res

	v := ofx.ValidateResult(res)
	p.Errors = append(p.Errors, v.Errors...)
	p.Warnings = append(p.Warnings, v.Warnings...)
	if !v.Valid {
		return p
	}

	p.Transactions = ofx.MapTransactions(res)
	p.SkippedRows = len(res.Transactions) - len(p.Transactions)
	if len(p.Transactions) == 0 {
		p.Errors = append(p.Errors, "no importable transactions found")
		return p
	}

	p.Deposits, p.Withdrawals, p.Net = model.Totals(p.Transactions)
	return p
}

// DetectFormat decides between CSV and OFX from the file name and a
// content sniff for OFX markers, covering both SGML and XML headers.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ofx", ".qfx":
		return FormatOFX
	}

	head := strings.ToUpper(string(data[:min(len(data), 512)]))
	if strings.Contains(head, "OFXHEADER") || strings.Contains(head, "<OFX>") || strings.Contains(head, "<?OFX") {
		return FormatOFX
	}
	return FormatCSV
}
