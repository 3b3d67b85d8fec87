package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/csvtable"
	"github.com/bankfeed-dev/bankfeed/internal/mapping"
)

func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Show the auto-detected column mapping for a CSV statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd.OutOrStdout(), args[0])
		},
	}
}

func runDetect(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	table := csvtable.Parse(string(data))
	if len(table.Headers) == 0 {
		return fmt.Errorf("no header row found in %s", path)
	}

	m := mapping.AutoDetect(table.Headers)
	fmt.Fprintf(w, "Headers: %v\n", table.Headers)
	fmt.Fprintf(w, "Date column: %s\n", orNone(m.DateColumn))

	switch src := m.Amount.(type) {
	case mapping.SingleColumn:
		fmt.Fprintf(w, "Amount column: %s\n", src.Column)
	case mapping.SplitColumns:
		fmt.Fprintf(w, "Deposit column: %s\n", orNone(src.Deposit))
		fmt.Fprintf(w, "Withdrawal column: %s\n", orNone(src.Withdrawal))
	default:
		fmt.Fprintln(w, "Amount column: (none)")
	}

	fmt.Fprintf(w, "Description column: %s\n", orNone(m.DescriptionColumn))
	fmt.Fprintf(w, "Reference column: %s\n", orNone(m.ReferenceColumn))

	if result := mapping.Validate(m); !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(w, "ERROR: %s\n", e)
		}
		return fmt.Errorf("detected mapping is incomplete")
	}
	fmt.Fprintln(w, "Mapping is complete")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
