package model

import "github.com/shopspring/decimal"

// TransactionType is the direction of a mapped transaction.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// MappedTransaction is the canonical transaction produced by both the CSV
// and OFX pipelines. Amount is always non-negative; direction is carried
// exclusively in Type.
type MappedTransaction struct {
	Date        string // YYYY-MM-DD
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Reference   string
}

// Totals sums the mapped transactions by direction.
// Net is deposits minus withdrawals.
func Totals(txns []MappedTransaction) (deposits, withdrawals, net decimal.Decimal) {
	deposits = decimal.Zero
	withdrawals = decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case Deposit:
			deposits = deposits.Add(txn.Amount)
		case Withdrawal:
			withdrawals = withdrawals.Add(txn.Amount)
		}
	}
	return deposits, withdrawals, deposits.Sub(withdrawals)
}
