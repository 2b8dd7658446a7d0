package commands

import (
	"os"

	"github.com/leapstack-labs/phraselint/internal/cli/config"
	"github.com/leapstack-labs/phraselint/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. Lints are
published as diagnostics and suggestions are offered as quick fixes.
The project configuration is read from the client's workspace root
(rootUri parameter of the initialize request).`,
		Example: `  # Start LSP server (usually called by an editor)
  phraselint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	logger := config.GetLogger(cmd.Context())
	server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
	return server.Run()
}
