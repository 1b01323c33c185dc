package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steveyegge/mind/internal/diag"
	"github.com/steveyegge/mind/internal/retrieval"
	"github.com/steveyegge/mind/internal/toolserver"
	"github.com/steveyegge/mind/internal/watch"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tool-server: line-framed JSON requests on stdin, responses on stdout",
	Run: func(_ *cobra.Command, _ []string) {
		os.Exit(runServe(projectDir, serveWatch))
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reindex automatically when MEMORY.md changes")
}

func runServe(dir string, watchEnabled bool) int {
	index, err := buildIndex(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	srv := toolserver.New(index, nil)

	if watchEnabled {
		w, err := watch.New(dir, "MEMORY.md", 0, func() {
			diag.Logf("MEMORY.md changed, reindexing\n")
			if fresh, err := buildIndex(dir); err == nil {
				srv.SetIndex(fresh)
			} else {
				diag.Logf("reindex failed: %v\n", err)
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
			return 1
		}
		defer w.Close()

		stop := make(chan struct{})
		go w.Run(stop)
		defer close(stop)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
