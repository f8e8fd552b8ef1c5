package main

import (
	"context"
	"fmt"

	"dlcheck/internal/classify"
	"dlcheck/internal/typeinfo"
	"dlcheck/pkg/dlcheck"

	"github.com/spf13/cobra"
)

var explainDir string

// explainCmd shows both verdicts for one type
var explainCmd = &cobra.Command{
	Use:   "explain TYPE",
	Short: "Explain why a type is or is not Data and Logic",
	Long: `Classifies a single type without the verdict cache and prints the full
path-qualified reason for each category.

Example:
  dlcheck explain example.com/app.Account --dir ./app`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringVarP(&explainDir, "dir", "d", ".", "Module directory")
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(explainDir)
	if err != nil {
		return usageError(err)
	}
	p, err := dlcheck.LoadProvider(context.Background(), explainDir, cfg)
	if err != nil {
		return usageError(err)
	}

	id := typeinfo.TypeID(args[0])
	if _, err := p.Describe(id); err != nil {
		return usageError(err)
	}

	c := classify.New(p, dlcheck.ClassifierOptions(cfg)...).Uncached()
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, typeinfo.ExpandName(p, id))
	if c.Exempt(id) {
		fmt.Fprintln(w, "  exempt")
		return nil
	}
	fmt.Fprintf(w, "  data:  %s\n", c.IsData(id, classify.Chain{}))
	fmt.Fprintf(w, "  logic: %s\n", c.IsLogic(id, classify.Chain{}))
	return nil
}
