package mapping

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/csvtable"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// Options control value normalization during projection.
type Options struct {
	DateOrder normalize.DateOrder
}

// Projection is the outcome of mapping parsed rows to transactions.
// Rows that do not survive the validity gate are reported in Skipped so
// callers can tell "nothing to import" from "rows were rejected".
type Projection struct {
	Transactions []model.MappedTransaction
	Skipped      []csvtable.Row
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Project converts parsed rows into canonical transactions using the
// given mapping. A row is kept only when its amount is positive and its
// date normalized to YYYY-MM-DD; everything else (totals rows, repeated
// headers, malformed dates, zero amounts) lands in Skipped.
//
// With split columns, a deposit wins when both cells are non-zero on the
// same row. With a single signed column, zero and positive amounts read
// as deposits, though zero is then rejected by the gate.
func Project(rows []csvtable.Row, m ColumnMapping, opts Options) Projection {
	var proj Projection
	for _, row := range rows {
		date := normalize.Date(row[m.DateColumn], opts.DateOrder)

		amount := decimal.Zero
		txType := model.Deposit
		switch src := m.Amount.(type) {
		case SingleColumn:
			raw := normalize.Amount(row[src.Column])
			amount = raw.Abs()
			if raw.IsNegative() {
				txType = model.Withdrawal
			}
		case SplitColumns:
			deposit := normalize.Amount(row[src.Deposit])
			withdrawal := normalize.Amount(row[src.Withdrawal])
			switch {
			case deposit.IsPositive():
				amount = deposit
			case withdrawal.IsPositive():
				amount = withdrawal
				txType = model.Withdrawal
			}
		}

		if !amount.IsPositive() || !isoDate.MatchString(date) {
			proj.Skipped = append(proj.Skipped, row)
			continue
		}

		txn := model.MappedTransaction{
			Date:   date,
			Amount: amount,
			Type:   txType,
		}
		if m.DescriptionColumn != "" {
			txn.Description = strings.TrimSpace(row[m.DescriptionColumn])
		}
		if m.ReferenceColumn != "" {
			txn.Reference = strings.TrimSpace(row[m.ReferenceColumn])
		}
		proj.Transactions = append(proj.Transactions, txn)
	}
	return proj
}
