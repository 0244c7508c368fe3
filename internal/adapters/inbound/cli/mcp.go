package cli

import (
	mcpadapter "github.com/abdidvp/visualkraft/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the visualkraft MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start visualkraft MCP server (stdio)",
		Long:  "Start the visualkraft MCP server using stdio transport. This lets AI coding assistants run validations, quick checks and theme sweeps against the project's site.",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.projectDir()
			if err != nil {
				return err
			}
			s := mcpadapter.NewVisualKraftMCPServer(dir, opts.logger.Named("mcp"))
			return server.ServeStdio(s)
		},
	}
}
