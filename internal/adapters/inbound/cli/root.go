package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/visualkraft/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	configPath string
	dir        string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "visualkraft",
		Short: "Catch visual regressions before your users do",
		Long: "visualkraft drives a headless browser across every page, viewport and theme, " +
			"audits accessibility, performance and design-token usage, and scores the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: <dir>/.visualkraft.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "Project directory holding config and run history")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newQuickCmd(opts))
	cmd.AddCommand(newThemesCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
