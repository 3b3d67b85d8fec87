package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/config"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "day-first"))

	for _, d := range []string{"import", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "day-first", cfg.DateOrder)

	_, err = os.Stat(filepath.Join(dir, "import", ".gitkeep"))
	assert.NoError(t, err)
}

func TestInit_MonthFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "month-first"))

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "month-first", cfg.DateOrder)
}

func TestInit_BadDateOrder(t *testing.T) {
	err := runInit(t.TempDir(), "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date order")
}

func TestDetect_CompleteMapping(t *testing.T) {
	var buf bytes.Buffer
	err := runDetect(&buf, "../../testdata/statement.csv")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Date column: Date")
	assert.Contains(t, out, "Amount column: Amount")
	assert.Contains(t, out, "Mapping is complete")
}

func TestDetect_SplitColumns(t *testing.T) {
	var buf bytes.Buffer
	err := runDetect(&buf, "../../testdata/split.csv")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Deposit column: Deposit")
	assert.Contains(t, out, "Withdrawal column: Withdrawal")
}

func TestDetect_IncompleteMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644))

	var buf bytes.Buffer
	err := runDetect(&buf, path)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "ERROR:")
}

// writeTestConfig saves a config with history disabled so preview runs
// do not write log files into the test working directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.History = false
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))
	return path
}

func TestPreview_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := runPreview(&buf, "../../testdata/statement.csv", writeTestConfig(t), "", 0, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "statement.csv (csv)")
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "Deposits: 1500.00")
	assert.Contains(t, out, "Withdrawals: 165.50")
	assert.Contains(t, out, "Net: 1334.50")
	assert.Contains(t, out, "Skipped rows: 1")
	assert.Contains(t, out, "Ready to import 3 transactions")
}

func TestPreview_OFX(t *testing.T) {
	var buf bytes.Buffer
	err := runPreview(&buf, "../../testdata/statement.ofx", writeTestConfig(t), "", 0, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Checking Account 1234567890 (USD)")
	assert.Contains(t, out, "Period: 2024-01-01 to 2024-01-31")
	assert.Contains(t, out, "Ledger balance: 2334.50")
	assert.Contains(t, out, "Ready to import 3 transactions")
}

func TestPreview_Limit(t *testing.T) {
	var buf bytes.Buffer
	err := runPreview(&buf, "../../testdata/statement.csv", writeTestConfig(t), "", 2, false)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "... and 1 more")
}

func TestPreview_UnknownPreset(t *testing.T) {
	var buf bytes.Buffer
	err := runPreview(&buf, "../../testdata/statement.csv", writeTestConfig(t), "nope", 0, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown preset")
}

func TestPreview_Preset(t *testing.T) {
	cfg := config.Default()
	cfg.History = false
	cfg.Presets = map[string]config.MappingPreset{
		"split": {Date: "Date", Deposit: "Deposit", Withdrawal: "Withdrawal", Description: "Description"},
	}
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, cfg))

	var buf bytes.Buffer
	err := runPreview(&buf, "../../testdata/split.csv", path, "split", 0, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ready to import 2 transactions")
}

func TestPreview_BlockedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644))

	var buf bytes.Buffer
	err := runPreview(&buf, path, writeTestConfig(t), "", 0, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import blocked")
	assert.Contains(t, buf.String(), "ERROR:")
}

func TestScan_Output(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.csv"), []byte("data"), 0o644))

	var buf bytes.Buffer
	err := runScan(&buf, "", dir)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "jan.csv")
}

func TestScan_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := runScan(&buf, "", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No statement files")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "preview")
	assert.Contains(t, names, "detect")
	assert.Contains(t, names, "scan")
}
