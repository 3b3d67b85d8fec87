package ofx

import (
	"fmt"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/model"
)

// MapTransactions projects an OFX parse result into canonical
// transactions. A negative signed amount becomes a withdrawal of its
// magnitude; zero-amount and undated records are dropped, matching the
// CSV projector's validity gate. Description prefers the transaction
// name, falling back to the memo; the reference prefers the FITID,
// falling back to the check number.
func MapTransactions(res *Result) []model.MappedTransaction {
	var txns []model.MappedTransaction
	for _, raw := range res.Transactions {
		if raw.Amount.IsZero() || raw.Posted.IsZero() {
			continue
		}

		txType := model.Deposit
		if raw.Amount.IsNegative() {
			txType = model.Withdrawal
		}

		desc := raw.Name
		if desc == "" {
			desc = raw.Memo
		}

		ref := raw.FITID
		if ref == "" {
			ref = raw.CheckNum
		}

		txns = append(txns, model.MappedTransaction{
			Date:        raw.Posted.Format("2006-01-02"),
			Amount:      raw.Amount.Abs(),
			Type:        txType,
			Description: desc,
			Reference:   ref,
		})
	}
	return txns
}

// Validation reports blocking errors and advisory warnings for an OFX
// parse result. Errors block import; warnings do not.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateResult sanity-checks an OFX statement before import.
func ValidateResult(res *Result) Validation {
	var v Validation

	if res.AccountID == "" {
		v.Errors = append(v.Errors, "statement has no account ID")
	}
	if len(res.Transactions) == 0 {
		v.Errors = append(v.Errors, "statement contains no transactions")
	}
	if !res.StatementStart.IsZero() && !res.StatementEnd.IsZero() && res.StatementStart.After(res.StatementEnd) {
		v.Errors = append(v.Errors, fmt.Sprintf("statement period starts (%s) after it ends (%s)",
			res.StatementStart.Format("2006-01-02"), res.StatementEnd.Format("2006-01-02")))
	}

	if res.BankID == "" && res.AccountType != "CREDITCARD" {
		v.Warnings = append(v.Warnings, "statement has no bank routing ID")
	}
	if res.Currency == "" {
		v.Warnings = append(v.Warnings, "statement does not declare a currency")
	}
	if res.LedgerBalanceDate.IsZero() {
		v.Warnings = append(v.Warnings, "statement ledger balance has no as-of date")
	}
	if n := countOutsidePeriod(res); n > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d transactions fall outside the statement period", n))
	}

	v.Valid = len(v.Errors) == 0
	return v
}

func countOutsidePeriod(res *Result) int {
	if res.StatementStart.IsZero() || res.StatementEnd.IsZero() {
		return 0
	}
	n := 0
	for _, raw := range res.Transactions {
		if raw.Posted.IsZero() {
			continue
		}
		if raw.Posted.Before(res.StatementStart) || raw.Posted.After(res.StatementEnd) {
			n++
		}
	}
	return n
}

// AccountTypeLabel maps an OFX account type code to a display label.
// Unknown codes fall back to a generic label.
func AccountTypeLabel(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "CHECKING":
		return "Checking Account"
	case "SAVINGS":
		return "Savings Account"
	case "MONEYMRKT":
		return "Money Market Account"
	case "CREDITLINE":
		return "Line of Credit"
	case "CD":
		return "Certificate of Deposit"
	case "CREDITCARD":
		return "Credit Card"
	default:
		return "Bank Account"
	}
}
