package main

import (
	"context"
	"fmt"
	"time"

	"dlcheck/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

// watchCmd re-runs check whenever a Go file changes
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run check whenever Go files change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet period before re-checking")
	watchCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "Output format: text, json or facts")
	watchCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable colored output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	ctx, stop := signalContext()
	defer stop()

	w := cmd.OutOrStdout()
	onChange := func(ctx context.Context, changed []string) {
		if len(changed) > 0 {
			fmt.Fprintf(w, "\n%d file(s) changed\n", len(changed))
		}
		// each run loads the packages afresh
		if err := checkDirs(ctx, cmd, w, []string{dir}); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	watcher, err := watch.New(dir, onChange, watch.WithDebounce(watchDebounce))
	if err != nil {
		return usageError(err)
	}
	watcher.Trigger(ctx)
	if err := watcher.Start(ctx); err != nil {
		return usageError(err)
	}
	defer watcher.Stop()

	<-ctx.Done()
	stats := watcher.Stats()
	logger.Info("watch stopped", zap.Int("runs", stats.Runs), zap.Int("errors", stats.Errors))
	return nil
}
