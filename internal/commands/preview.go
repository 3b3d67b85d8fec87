package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/history"
	"github.com/bankfeed-dev/bankfeed/internal/mapping"
	"github.com/bankfeed-dev/bankfeed/internal/ofx"
	"github.com/bankfeed-dev/bankfeed/internal/preview"
)

func newPreviewCommand(verbose *bool) *cobra.Command {
	var configPath string
	var preset string
	var limit int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Parse a statement file and show what would be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), args[0], configPath, preset, limit, *verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to bankfeed.yaml")
	cmd.Flags().StringVar(&preset, "preset", "", "named mapping preset from the config instead of auto-detection")
	cmd.Flags().IntVar(&limit, "limit", 0, "max transactions to display (0 = config default)")

	return cmd
}

func runPreview(w io.Writer, path, configPath, preset string, limit int, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = cfg.PreviewRows
	}

	var m *mapping.ColumnMapping
	if preset != "" {
		p, ok := cfg.Presets[preset]
		if !ok {
			return fmt.Errorf("unknown preset %q", preset)
		}
		cm, err := p.ToMapping()
		if err != nil {
			return fmt.Errorf("preset %q: %w", preset, err)
		}
		m = &cm
	}

	svc := preview.New(newLogger(verbose), cfg.ParseDateOrder())
	p, err := svc.FromFile(path, m)
	if err != nil {
		return err
	}

	renderPreview(w, p, limit)

	if cfg.History {
		entry := history.Entry{
			Timestamp: time.Now(),
			FileName:  p.FileName,
			Format:    string(p.Format),
			RowCount:  len(p.Transactions) + p.SkippedRows,
			Mapped:    len(p.Transactions),
			Skipped:   p.SkippedRows,
			Valid:     p.Ready(),
		}
		if err := history.Append(".", []history.Entry{entry}); err != nil {
			return fmt.Errorf("recording history: %w", err)
		}
	}

	if !p.Ready() {
		return fmt.Errorf("import blocked: file did not produce a valid preview")
	}
	return nil
}

func renderPreview(w io.Writer, p *preview.Preview, limit int) {
	fmt.Fprintf(w, "File: %s (%s)\n", p.FileName, p.Format)

	if p.Account != nil {
		fmt.Fprintf(w, "Account: %s %s", ofx.AccountTypeLabel(p.Account.AccountType), p.Account.AccountID)
		if p.Account.Currency != "" {
			fmt.Fprintf(w, " (%s)", p.Account.Currency)
		}
		fmt.Fprintln(w)
		if !p.Account.StatementStart.IsZero() {
			fmt.Fprintf(w, "Period: %s to %s\n",
				p.Account.StatementStart.Format("2006-01-02"),
				p.Account.StatementEnd.Format("2006-01-02"))
		}
		fmt.Fprintf(w, "Ledger balance: %s\n", p.Account.LedgerBalance.StringFixed(2))
	}

	for _, e := range p.Errors {
		fmt.Fprintf(w, "ERROR: %s\n", e)
	}
	for _, warn := range p.Warnings {
		fmt.Fprintf(w, "WARNING: %s\n", warn)
	}

	if len(p.Transactions) == 0 {
		return
	}

	shown := p.Transactions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tDESCRIPTION\tREFERENCE")
	for _, txn := range shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", txn.Date, txn.Type, txn.Amount.StringFixed(2), txn.Description, txn.Reference)
	}
	tw.Flush()

	if len(shown) < len(p.Transactions) {
		fmt.Fprintf(w, "... and %d more\n", len(p.Transactions)-len(shown))
	}

	fmt.Fprintf(w, "Deposits: %s  Withdrawals: %s  Net: %s\n",
		p.Deposits.StringFixed(2), p.Withdrawals.StringFixed(2), p.Net.StringFixed(2))
	if p.SkippedRows > 0 {
		fmt.Fprintf(w, "Skipped rows: %d\n", p.SkippedRows)
	}
	if p.Ready() {
		fmt.Fprintf(w, "Ready to import %d transactions\n", len(p.Transactions))
	}
}
