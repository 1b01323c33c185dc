// Command mind is the CLI surface over the parser, retrieval engine, and
// primer scorer: init, parse, search, primer, serve. Grounded on
// cmd/bd/main.go's rootCmd/PersistentFlags shape, scaled down to this
// module's much smaller command tree (no daemon, no multi-backend storage
// selection).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/mind/internal/diag"
)

var (
	projectDir  string
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "mind",
	Short: "mind - a file-based memory substrate for AI coding assistants",
	Long:  `Parses MEMORY.md into typed entities, indexes them for hybrid search, and scores a session-start primer briefing.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		diag.SetVerbose(verboseFlag)
		diag.SetQuiet(quietFlag)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "project", ".", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.AddCommand(initCmd, parseCmd, searchCmd, primerCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
