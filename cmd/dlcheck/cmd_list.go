package main

import (
	"context"
	"fmt"

	"dlcheck/internal/facts"
	"dlcheck/internal/typeinfo"
	"dlcheck/pkg/dlcheck"

	"github.com/spf13/cobra"
)

var listFacts bool

// listCmd prints the enumerated types
var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the types a check would classify",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listFacts, "facts", false, "Print type_kind facts instead of a table")
}

func runList(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return usageError(err)
	}
	p, err := dlcheck.LoadProvider(context.Background(), dir, cfg)
	if err != nil {
		return usageError(err)
	}

	w := cmd.OutOrStdout()
	var fs []facts.Fact
	for _, id := range p.Types() {
		d, err := p.Describe(id)
		if err != nil {
			return err
		}
		if listFacts {
			fs = append(fs, facts.TypeKind(string(id), d.Kind.String()))
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", d.Kind, typeinfo.ExpandName(p, id))
	}
	if listFacts {
		fmt.Fprint(w, facts.Program(fs))
	}
	return nil
}
