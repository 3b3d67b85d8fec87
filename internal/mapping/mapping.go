// Package mapping assigns semantic transaction fields to CSV headers and
// projects mapped rows into canonical transactions.
package mapping

import "strings"

// AmountSource tells the projector where transaction amounts come from.
// The two strategies are mutually exclusive by construction.
type AmountSource interface {
	amountSource()
}

// SingleColumn reads a signed amount from one column. The sign determines
// the transaction direction.
type SingleColumn struct {
	Column string
}

// SplitColumns reads unsigned deposits and withdrawals from two separate
// columns. Either column name may be empty, but not both.
type SplitColumns struct {
	Deposit    string
	Withdrawal string
}

func (SingleColumn) amountSource() {}
func (SplitColumns) amountSource() {}

// ColumnMapping names which headers supply which semantic field.
type ColumnMapping struct {
	DateColumn        string
	Amount            AmountSource
	DescriptionColumn string
	ReferenceColumn   string
}

// Per-field header patterns, in priority order. The first header whose
// lowercased text contains the pattern wins.
var (
	datePatterns        = []string{"transaction date", "posting date", "value date", "date"}
	amountPatterns      = []string{"amount", "value", "transaction amount"}
	depositPatterns     = []string{"deposit", "credit", "paid in", "inflow", "money in"}
	withdrawalPatterns  = []string{"withdrawal", "debit", "paid out", "outflow", "money out"}
	descriptionPatterns = []string{"description", "narrative", "details", "memo", "payee", "particulars"}
	referencePatterns   = []string{"reference", "ref", "cheque", "check number", "transaction id"}
)

// AutoDetect guesses a ColumnMapping from header names. It is a
// best-effort suggestion only; callers must still run Validate. A signed
// amount column wins over split deposit/withdrawal columns when both are
// present.
func AutoDetect(headers []string) ColumnMapping {
	m := ColumnMapping{
		DateColumn:        detect(headers, datePatterns),
		DescriptionColumn: detect(headers, descriptionPatterns),
		ReferenceColumn:   detect(headers, referencePatterns),
	}

	if col := detectAmount(headers); col != "" {
		m.Amount = SingleColumn{Column: col}
		return m
	}

	deposit := detect(headers, depositPatterns)
	withdrawal := detect(headers, withdrawalPatterns)
	if deposit != "" || withdrawal != "" {
		m.Amount = SplitColumns{Deposit: deposit, Withdrawal: withdrawal}
	}
	return m
}

// detect returns the first header matching the highest-priority pattern.
func detect(headers []string, patterns []string) string {
	for _, p := range patterns {
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), p) {
				return h
			}
		}
	}
	return ""
}

// detectAmount finds a signed amount column. Exact matches are preferred
// over substring matches, and headers that look like deposit,
// withdrawal, or date columns (e.g. "Value Date") are never claimed as
// the generic amount column.
func detectAmount(headers []string) string {
	for _, p := range amountPatterns {
		for _, h := range headers {
			if lower := strings.ToLower(h); !excludedFromAmount(lower) && lower == p {
				return h
			}
		}
		for _, h := range headers {
			if lower := strings.ToLower(h); !excludedFromAmount(lower) && strings.Contains(lower, p) {
				return h
			}
		}
	}
	return ""
}

func excludedFromAmount(lower string) bool {
	return strings.Contains(lower, "deposit") ||
		strings.Contains(lower, "withdrawal") ||
		strings.Contains(lower, "date")
}

// Result reports whether a mapping is complete enough to project.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks that a date column and an amount source are assigned.
// It does not check that the named headers exist in the parsed table;
// a mapping referencing a missing header simply projects empty cells.
func Validate(m ColumnMapping) Result {
	var errs []string

	if m.DateColumn == "" {
		errs = append(errs, "a date column must be selected")
	}

	switch src := m.Amount.(type) {
	case nil:
		errs = append(errs, "an amount column or deposit/withdrawal columns must be selected")
	case SingleColumn:
		if src.Column == "" {
			errs = append(errs, "an amount column must be selected")
		}
	case SplitColumns:
		if src.Deposit == "" && src.Withdrawal == "" {
			errs = append(errs, "a deposit or withdrawal column must be selected")
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
