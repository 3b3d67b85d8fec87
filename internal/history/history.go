// Package history keeps an append-only CSV log of preview runs so past
// import attempts can be audited.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the preview history log.
type Entry struct {
	Timestamp time.Time
	FileName  string
	Format    string
	RowCount  int
	Mapped    int
	Skipped   int
	Valid     bool
}

// Header is the CSV header for preview-history.csv.
const Header = "timestamp,file,format,rows,mapped,skipped,valid"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/preview-history.csv"
	colTimestamp = 0
	colFile      = 1
	colFormat    = 2
	colRows      = 3
	colMapped    = 4
	colSkipped   = 5
	colValid     = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.FileName
	row[colFormat] = e.Format
	row[colRows] = strconv.Itoa(e.RowCount)
	row[colMapped] = strconv.Itoa(e.Mapped)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colValid] = strconv.FormatBool(e.Valid)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	rows, err := strconv.Atoi(record[colRows])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing rows %q: %w", record[colRows], err)
	}
	mapped, err := strconv.Atoi(record[colMapped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing mapped %q: %w", record[colMapped], err)
	}
	skipped, err := strconv.Atoi(record[colSkipped])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing skipped %q: %w", record[colSkipped], err)
	}
	valid, err := strconv.ParseBool(record[colValid])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing valid %q: %w", record[colValid], err)
	}

	return Entry{
		Timestamp: ts,
		FileName:  record[colFile],
		Format:    record[colFormat],
		RowCount:  rows,
		Mapped:    mapped,
		Skipped:   skipped,
		Valid:     valid,
	}, nil
}

// Append writes entries to <root>/logs/preview-history.csv, creating the
// file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/preview-history.csv.
// A missing file reads as empty.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
