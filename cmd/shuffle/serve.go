package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/shuffle/internal/entry"
	shufflemcp "github.com/gorewood/shuffle/internal/mcp"
	"github.com/gorewood/shuffle/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var entryFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run shuffle as a Model Context Protocol (MCP) server over stdio.

The server keeps an in-session entry list; --entries preloads it from files.
Defaults for format, width and measurer come from config and SHUFFLE_*.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "shuffle": {
        "command": "shuffle",
        "args": ["serve"]
      }
    }
  }

Available tools: transform, formats, entry_create, entry_list, entry_update,
entry_delete, entry_move, entry_transform`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer, err := newPrinter(cmd)
			if err != nil {
				return err
			}

			var flags transformFlags
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return fail(printer, err)
			}

			store := entry.NewStore()
			for _, path := range entryFiles {
				e, err := entry.LoadFile(path)
				if err != nil {
					return fail(printer, output.NewUserErrorWithCause(err.Error(), err))
				}
				if _, err := store.Create(*e); err != nil {
					return fail(printer, output.NewUserErrorWithCause(path+": "+err.Error(), err))
				}
			}

			server := shufflemcp.NewServer(buildVersion(), store, cfg)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringSliceVar(&entryFiles, "entries", nil, "Entry files to preload")

	return cmd
}
