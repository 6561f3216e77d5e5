package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cdkparity/cdkparity/internal/adapters/outbound/tui"
	"github.com/cdkparity/cdkparity/internal/domain/template"
)

func newCompareCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "compare <template-a> <template-b>",
		Short: "Compare two synthesized templates structurally",
		Long:  "Canonicalize two template files (sorted keys, fixed indent) and report whether they are structurally identical. Exits 1 with a unified diff on mismatch.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			b, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}

			matched, diff := template.Compare(string(a), string(b), args[0], args[1])
			if matched {
				fmt.Fprintln(cmd.OutOrStdout(), "templates match")
				return nil
			}

			if full {
				fmt.Fprint(cmd.OutOrStdout(), diff)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiff(diff))
			}
			return fmt.Errorf("templates differ")
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the complete diff without truncation or color")

	return cmd
}
