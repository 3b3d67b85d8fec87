// Package csvtable parses raw bank statement CSV text into a header-keyed
// table. Parsing never fails: malformed input degrades to an empty or
// misaligned table rather than an error, so a bad file can still be shown
// to the user for mapping adjustments.
package csvtable

import "strings"

// Row maps a header name to the raw cell value for one data line.
// Every header present in the table has a key; missing trailing cells
// are filled with the empty string.
type Row map[string]string

// Table is the result of parsing one CSV file.
type Table struct {
	Headers  []string
	Rows     []Row
	RowCount int
}

// Parse tokenizes CSV content into a Table. The first non-blank line is
// the header row. Blank and whitespace-only lines are dropped, as are
// data rows whose every cell is empty. Rows with fewer cells than headers
// are padded positionally; extra cells are discarded.
func Parse(content string) *Table {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	t := &Table{}
	if len(lines) == 0 {
		return t
	}

	t.Headers = parseLine(lines[0])
	for _, line := range lines[1:] {
		cells := parseLine(line)
		if allEmpty(cells) {
			continue
		}
		row := make(Row, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	t.RowCount = len(t.Rows)
	return t
}

// parseLine splits one CSV line into trimmed fields. Commas inside
// quotes do not split; a doubled quote inside a quoted field emits one
// literal quote.
func parseLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
