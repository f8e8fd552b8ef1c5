package main

import (
	"fmt"
	"os"
	"path/filepath"

	"dlcheck/internal/config"

	"github.com/spf13/cobra"
)

var initForce bool

// initCmd writes a default config file
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default " + config.DefaultFileName,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (use --force to overwrite)\n", path)
		return nil
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return usageError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
