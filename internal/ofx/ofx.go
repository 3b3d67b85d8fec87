// Package ofx extracts bank and credit card statements from OFX 1.x SGML
// and 2.x XML files and projects them into canonical transactions.
package ofx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Result holds the account metadata, statement period, balances, and raw
// transactions extracted from one OFX statement.
type Result struct {
	BankID           string
	AccountID        string
	AccountType      string
	Currency         string
	StatementStart    time.Time
	StatementEnd      time.Time
	LedgerBalance     decimal.Decimal
	LedgerBalanceDate time.Time
	AvailableBalance  decimal.Decimal
	Transactions      []RawTransaction
}

// RawTransaction is one OFX statement transaction before canonical
// mapping. Amount keeps the sign from the file: negative means money out.
type RawTransaction struct {
	Posted   time.Time
	Amount   decimal.Decimal
	Type     string
	Name     string
	Memo     string
	FITID    string
	CheckNum string
}

// Parse reads an OFX statement. The first bank statement in the response
// wins; a credit card statement is used when no bank statement is
// present.
func Parse(r io.Reader) (*Result, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing OFX: %w", err)
	}

	if len(resp.Bank) > 0 {
		stmt, ok := resp.Bank[0].(*ofxgo.StatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected bank message type %T", resp.Bank[0])
		}
		return fromBank(stmt), nil
	}

	if len(resp.CreditCard) > 0 {
		stmt, ok := resp.CreditCard[0].(*ofxgo.CCStatementResponse)
		if !ok {
			return nil, fmt.Errorf("unexpected credit card message type %T", resp.CreditCard[0])
		}
		return fromCreditCard(stmt), nil
	}

	return nil, fmt.Errorf("no bank or credit card statement found in OFX file")
}

func fromBank(stmt *ofxgo.StatementResponse) *Result {
	res := &Result{
		BankID:            stmt.BankAcctFrom.BankID.String(),
		AccountID:         stmt.BankAcctFrom.AcctID.String(),
		AccountType:       stmt.BankAcctFrom.AcctType.String(),
		Currency:          stmt.CurDef.String(),
		LedgerBalance:     toDecimal(stmt.BalAmt),
		LedgerBalanceDate: stmt.DtAsOf.Time,
	}
	if stmt.AvailBalAmt != nil {
		res.AvailableBalance = toDecimal(*stmt.AvailBalAmt)
	}
	fillTransactions(res, stmt.BankTranList)
	return res
}

func fromCreditCard(stmt *ofxgo.CCStatementResponse) *Result {
	res := &Result{
		AccountID:         stmt.CCAcctFrom.AcctID.String(),
		AccountType:       "CREDITCARD",
		Currency:          stmt.CurDef.String(),
		LedgerBalance:     toDecimal(stmt.BalAmt),
		LedgerBalanceDate: stmt.DtAsOf.Time,
	}
	if stmt.AvailBalAmt != nil {
		res.AvailableBalance = toDecimal(*stmt.AvailBalAmt)
	}
	fillTransactions(res, stmt.BankTranList)
	return res
}

func fillTransactions(res *Result, list *ofxgo.TransactionList) {
	if list == nil {
		return
	}
	res.StatementStart = list.DtStart.Time
	res.StatementEnd = list.DtEnd.Time
	for _, txn := range list.Transactions {
		res.Transactions = append(res.Transactions, RawTransaction{
			Posted:   txn.DtPosted.Time,
			Amount:   toDecimal(txn.TrnAmt),
			Type:     txn.TrnType.String(),
			Name:     strings.TrimSpace(txn.Name.String()),
			Memo:     strings.TrimSpace(txn.Memo.String()),
			FITID:    txn.FiTID.String(),
			CheckNum: txn.CheckNum.String(),
		})
	}
}

// toDecimal converts an OFX rational amount to a decimal. ofxgo renders
// amounts as plain decimal strings, so a parse failure means a zero
// value, not an error.
func toDecimal(a ofxgo.Amount) decimal.Decimal {
	d, err := decimal.NewFromString(a.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
