package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/mapping"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.DateOrder = "month-first"
	cfg.Presets = map[string]MappingPreset{
		"firstbank": {
			Date:        "Trans Date",
			Deposit:     "Credit",
			Withdrawal:  "Debit",
			Description: "Narrative",
		},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.DateOrder, got.DateOrder)
	assert.Equal(t, cfg.ImportDir, got.ImportDir)
	assert.Equal(t, cfg.PreviewRows, got.PreviewRows)
	assert.Equal(t, cfg.History, got.History)
	require.Contains(t, got.Presets, "firstbank")
	assert.Equal(t, "Trans Date", got.Presets["firstbank"].Date)
	assert.Equal(t, "Credit", got.Presets["firstbank"].Deposit)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "day-first", cfg.DateOrder)
	assert.Equal(t, "import", cfg.ImportDir)
	assert.Equal(t, 20, cfg.PreviewRows)
	assert.True(t, cfg.History)
	assert.Empty(t, cfg.Presets)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseDateOrder(t *testing.T) {
	cfg := Default()
	assert.Equal(t, normalize.DayFirst, cfg.ParseDateOrder())

	cfg.DateOrder = "month-first"
	assert.Equal(t, normalize.MonthFirst, cfg.ParseDateOrder())

	cfg.DateOrder = "nonsense"
	assert.Equal(t, normalize.DayFirst, cfg.ParseDateOrder())
}

func TestPresetToMapping_Single(t *testing.T) {
	p := MappingPreset{Date: "Date", Amount: "Amount", Description: "Memo"}

	m, err := p.ToMapping()
	require.NoError(t, err)
	assert.Equal(t, "Date", m.DateColumn)
	require.IsType(t, mapping.SingleColumn{}, m.Amount)
	assert.Equal(t, "Amount", m.Amount.(mapping.SingleColumn).Column)
	assert.True(t, mapping.Validate(m).Valid)
}

func TestPresetToMapping_Split(t *testing.T) {
	p := MappingPreset{Date: "Date", Deposit: "Credit", Withdrawal: "Debit"}

	m, err := p.ToMapping()
	require.NoError(t, err)
	require.IsType(t, mapping.SplitColumns{}, m.Amount)
}

func TestPresetToMapping_BothSourcesRejected(t *testing.T) {
	p := MappingPreset{Date: "Date", Amount: "Amount", Deposit: "Credit"}

	_, err := p.ToMapping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both")
}

func TestPresetToMapping_NoAmountSource(t *testing.T) {
	p := MappingPreset{Date: "Date"}

	m, err := p.ToMapping()
	require.NoError(t, err)
	assert.Nil(t, m.Amount)
	assert.False(t, mapping.Validate(m).Valid)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "date_order: day-first")
	assert.Contains(t, contents, "import_dir: import")
	assert.Contains(t, contents, "preview_rows: 20")
	assert.Contains(t, contents, "history: true")
}
