// Package normalize converts raw statement cell values into canonical
// dates and amounts, tolerating the conventions seen in real bank
// exports. Both functions are total: unparseable input degrades to the
// original string or to zero, never to an error.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateOrder selects how an ambiguous slash- or dash-separated date such
// as 03/04/2024 is read. Bank exports do not mark the convention, so it
// has to be supplied by configuration.
type DateOrder int

const (
	DayFirst DateOrder = iota
	MonthFirst
)

var (
	isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
)

// fallbackLayouts are tried in order when neither the ISO prefix nor the
// slash pattern matches.
var fallbackLayouts = []string{
	"2006/01/02",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date converts a raw date cell to YYYY-MM-DD. Empty input maps to the
// empty string. When no convention matches, the input is returned
// unchanged so the projector can reject the row.
func Date(s string, order DateOrder) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if isoPrefix.MatchString(s) {
		return s[:10]
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		day, month := first, second
		if order == MonthFirst {
			day, month = second, first
		}
		// Reject impossible calendar dates, typically a misconfigured
		// DateOrder reading a day as a month.
		candidate := fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
		if _, err := time.Parse("2006-01-02", candidate); err != nil {
			return s
		}
		return candidate
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return s
}

// currency strips currency glyphs and thousands separators.
var currency = strings.NewReplacer("₦", "", "$", "", "€", "", "£", "", "¥", "", ",", "")

// Amount converts a raw amount cell to a decimal. Parenthesized values
// follow accounting notation and become negative. Empty or unparseable
// input maps to zero.
func Amount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.TrimSpace(currency.Replace(s))
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSpace(s[1:len(s)-1])
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
