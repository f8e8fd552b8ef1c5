package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dlcheck/internal/config"
	"dlcheck/internal/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitViolations = 1
	exitUsage      = 2
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: exitUsage, err: err} }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitViolations
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dlcheck",
	Short: "dlcheck - Data/Logic architecture checker",
	Long: `dlcheck verifies that every type of a Go module is either Data
(an immutable value) or Logic (a component whose only mutable state is
private State).

Types that are neither are reported with an explanation of why they fail
both categories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		cfg, err := loadConfig(".")
		if err != nil {
			return usageError(err)
		}
		opts := cfg.Logging.Options()
		if verbose {
			opts.Level = "debug"
		}
		if err := logging.Initialize(opts); err != nil {
			return usageError(fmt.Errorf("failed to initialize logger: %w", err))
		}
		logger = logging.Base()
		logging.BootDebug("dlcheck %s starting", cmd.Name())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// loadConfig reads --config when given, otherwise dir/.dlcheck.yaml.
func loadConfig(dir string) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(dir, config.DefaultFileName)
	}
	return config.Load(path)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <dir>/"+config.DefaultFileName+")")

	// Add commands to root
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
