package cmd

import (
	"github.com/clearlabel/clearlabel/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Clearlabel MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze products and inspect the cache via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; setup logs go to stderr.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		analyzer, err := newAnalyzer()
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, cfg, analyzer)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
