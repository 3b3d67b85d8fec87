package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/config"
)

func newInitCommand() *cobra.Command {
	var dateOrder string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a statement import working directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, dateOrder)
		},
	}

	cmd.Flags().StringVar(&dateOrder, "date-order", "day-first", "ambiguous date convention: day-first or month-first")

	return cmd
}

func runInit(dir, dateOrder string) error {
	if dateOrder != "day-first" && dateOrder != "month-first" {
		return fmt.Errorf("invalid date order %q", dateOrder)
	}

	for _, d := range []string{"import", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.DateOrder = dateOrder
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing import/.gitkeep: %w", err)
	}

	return nil
}
