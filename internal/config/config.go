package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/mapping"
	"github.com/bankfeed-dev/bankfeed/internal/normalize"
)

// FileName is the default configuration file name.
const FileName = "bankfeed.yaml"

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	// DateOrder is "day-first" or "month-first" and decides how ambiguous
	// dates like 03/04/2024 in CSV statements are read.
	DateOrder   string                   `yaml:"date_order"`
	ImportDir   string                   `yaml:"import_dir"`
	PreviewRows int                      `yaml:"preview_rows"`
	History     bool                     `yaml:"history"`
	Presets     map[string]MappingPreset `yaml:"presets,omitempty"`
}

// MappingPreset is a named column mapping for a specific bank's export
// layout, used instead of auto-detection.
type MappingPreset struct {
	Date        string `yaml:"date"`
	Amount      string `yaml:"amount,omitempty"`
	Deposit     string `yaml:"deposit,omitempty"`
	Withdrawal  string `yaml:"withdrawal,omitempty"`
	Description string `yaml:"description,omitempty"`
	Reference   string `yaml:"reference,omitempty"`
}

// ToMapping converts a preset to a ColumnMapping. A preset may use a
// signed amount column or split deposit/withdrawal columns, not both.
func (p MappingPreset) ToMapping() (mapping.ColumnMapping, error) {
	m := mapping.ColumnMapping{
		DateColumn:        p.Date,
		DescriptionColumn: p.Description,
		ReferenceColumn:   p.Reference,
	}

	hasSplit := p.Deposit != "" || p.Withdrawal != ""
	switch {
	case p.Amount != "" && hasSplit:
		return mapping.ColumnMapping{}, fmt.Errorf("preset sets both an amount column and deposit/withdrawal columns")
	case p.Amount != "":
		m.Amount = mapping.SingleColumn{Column: p.Amount}
	case hasSplit:
		m.Amount = mapping.SplitColumns{Deposit: p.Deposit, Withdrawal: p.Withdrawal}
	}
	return m, nil
}

// ParseDateOrder converts the configured convention string. Anything
// other than "month-first" reads as day-first.
func (c *Config) ParseDateOrder() normalize.DateOrder {
	if c.DateOrder == "month-first" {
		return normalize.MonthFirst
	}
	return normalize.DayFirst
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new working
// directory.
func Default() *Config {
	return &Config{
		DateOrder:   "day-first",
		ImportDir:   "import",
		PreviewRows: 20,
		History:     true,
	}
}
