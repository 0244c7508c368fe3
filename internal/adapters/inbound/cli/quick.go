package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/tui"
)

func newQuickCmd(opts *globalOptions) *cobra.Command {
	var (
		selector   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "quick <url>",
		Short: "Fast single-page check",
		Long:  "Screenshot one page at the default viewport, run the accessibility audit, count console errors and look for design tokens.",
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

			result, err := svc.QuickVisualCheck(ctx, args[0], selector)
			if err != nil {
				return fmt.Errorf("quick check failed: %w", err)
			}

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQuickCheck(result))
			}

			if !result.Passed {
				return fmt.Errorf("quick check found %d issues", len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selector, "selector", "", "CSS selector of the component to audit")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")

	return cmd
}
