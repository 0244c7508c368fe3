package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/history"
	"github.com/abdidvp/visualkraft/internal/adapters/outbound/tui"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	var (
		baseURL     string
		outputDir   string
		concurrency int
		headless    bool
		jsonOutput  bool
		ciMode      bool
		minScore    int
	)

	cmd := &cobra.Command{
		Use:   "run [pages...]",
		Short: "Run the full visual validation",
		Long:  "Capture every page at every viewport and theme, run the audit probes, and print the scored report. Pages default to \"/\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			pages := args
			if len(pages) == 0 {
				pages = []string{"/"}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Flags override the config file
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("output") {
				cfg.OutputDir = outputDir
			}
			if flags.Changed("concurrency") {
				cfg.Concurrency = concurrency
			}
			if flags.Changed("headless") {
				cfg.Browser.Headless = headless
			}
			if flags.Changed("min") {
				cfg.MinScore = minScore
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			svc, err := opts.newService(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()

			result, err := svc.RunVisualValidation(ctx, pages)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			dir, err := opts.projectDir()
			if err != nil {
				return err
			}

			// Attach git commit hash if available
			if git := gitinfo.New(); git.IsGitRepo(dir) {
				hash, err := git.CommitHash(dir)
				if err != nil {
					opts.logger.Debug("resolving commit hash", zap.Error(err))
				}
				result.CommitHash = hash
			}

			if err := history.New().Save(dir, history.EntryFor(result)); err != nil {
				opts.logger.Warn("saving run history", zap.Error(err))
			}

			if jsonOutput {
				if err := renderJSON(cmd, result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
			}

			if ciMode && result.OverallScore < cfg.MinScore {
				return fmt.Errorf("score %d is below minimum %d", result.OverallScore, cfg.MinScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the site under test")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for screenshots")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Pages validated in parallel")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().IntVar(&minScore, "min", 0, "Minimum score for CI mode (overrides min_score)")

	return cmd
}
