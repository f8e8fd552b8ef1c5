package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"dlcheck/internal/config"
	"dlcheck/internal/report"
	"dlcheck/internal/validate"
	"dlcheck/pkg/dlcheck"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	checkFormat    string
	checkKeepGoing bool
	checkPatterns  []string
	checkNoColor   bool
)

// checkCmd validates one or more modules
var checkCmd = &cobra.Command{
	Use:   "check [dir...]",
	Short: "Check that every type is Data or Logic",
	Long: `Loads the packages of each module directory and classifies every
declared type. Modules are checked concurrently, each in its own session.

Exit status is 1 when any type is neither Data nor Logic and 2 when a
config or package cannot be loaded.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "", "Output format: text, json or facts")
	checkCmd.Flags().BoolVarP(&checkKeepGoing, "keep-going", "k", false, "Report every failure instead of stopping at the first")
	checkCmd.Flags().StringSliceVarP(&checkPatterns, "pattern", "p", nil, "Package patterns to load (default from config)")
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable colored output")
}

// checkConfig loads the config for dir and applies the command-line overrides.
func checkConfig(cmd *cobra.Command, dir string) (*config.Config, error) {
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = checkFormat
	}
	if cmd.Flags().Changed("keep-going") {
		cfg.KeepGoing = checkKeepGoing
	}
	if len(checkPatterns) > 0 {
		cfg.Patterns = checkPatterns
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()
	return checkDirs(ctx, cmd, cmd.OutOrStdout(), args)
}

// checkDirs loads every dir, validates them with RunAll and writes the
// combined report to w.
func checkDirs(ctx context.Context, cmd *cobra.Command, w io.Writer, dirs []string) error {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	format := ""
	sets := make([]validate.Set, 0, len(dirs))
	for _, dir := range dirs {
		cfg, err := checkConfig(cmd, dir)
		if err != nil {
			return usageError(err)
		}
		if format == "" {
			format = cfg.Format
		}
		p, err := dlcheck.LoadProvider(ctx, dir, cfg)
		if err != nil {
			return usageError(err)
		}
		sets = append(sets, validate.Set{
			Name:     dir,
			Provider: p,
			Roots:    p.Types(),
			Options:  dlcheck.SessionOptions(cfg),
		})
	}

	reports, runErr := validate.RunAll(ctx, sets)
	if ctx.Err() != nil {
		return usageError(ctx.Err())
	}

	sections := make([]report.Section, len(reports))
	for i, r := range reports {
		sections[i] = report.Section{Name: sets[i].Name, Report: r}
	}
	if err := report.Write(w, format, sections, report.Options{NoColor: checkNoColor, Verbose: verbose}); err != nil {
		return usageError(err)
	}

	if runErr != nil {
		n := len(multierr.Errors(runErr))
		logger.Debug("check failed", zap.Int("failures", n))
		return &exitError{code: exitViolations, err: fmt.Errorf("%d type(s) are neither Data nor Logic", n)}
	}
	return nil
}
