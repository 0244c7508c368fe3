package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/tui"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past run scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.projectDir()
			if err != nil {
				return err
			}
			entries, err := history.New().Load(dir)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")

	return cmd
}
