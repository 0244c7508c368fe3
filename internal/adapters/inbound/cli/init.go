package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/visualkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/visualkraft/internal/domain"
)

const configHeader = "# visualkraft configuration\n# Keys left out fall back to the built-in defaults.\n\n"

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		baseURL string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .visualkraft.yaml configuration file",
		Long:  "Create a .visualkraft.yaml holding the default viewports, themes, weights and token names.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.dir
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("rendering config: %w", err)
			}

			if err := os.WriteFile(dest, append([]byte(configHeader), data...), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL of the site under test")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .visualkraft.yaml")

	return cmd
}
