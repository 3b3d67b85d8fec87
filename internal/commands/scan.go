package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/preview"
)

func newScanCommand() *cobra.Command {
	var configPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List statement files waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.OutOrStdout(), configPath, dir)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to bankfeed.yaml")
	cmd.Flags().StringVar(&dir, "dir", "", "import directory (overrides config)")

	return cmd
}

func runScan(w io.Writer, configPath, dir string) error {
	if dir == "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		dir = cfg.ImportDir
	}

	files, err := preview.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No statement files in %s\n", dir)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\n", f.Name, f.Size)
	}
	return tw.Flush()
}
