package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/tui"
)

func newThemesCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "themes <url>",
		Short: "Sweep every configured theme over one page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			svc, err := opts.newService(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			report, err := svc.CheckThemes(ctx, args[0])
			if err != nil {
				return fmt.Errorf("theme sweep failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderThemes(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")

	return cmd
}
