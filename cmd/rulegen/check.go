package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rerr "github.com/rulegen/rulegen/error"
	"github.com/rulegen/rulegen/grammar"
	"github.com/rulegen/rulegen/spec"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <rule file path>",
		Short:   "Check a rule file for well-formedness",
		Example: `  rulegen check academia.rules`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, err := readRuleSet(args[0])
	return err
}

func readRuleSet(path string) (rules grammar.RuleSet, retErr error) {
	defer func() {
		var specErr *rerr.SpecError
		if errors.As(retErr, &specErr) {
			specErr.FilePath = path
			specErr.SourceName = path
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the rule file %v: %w", path, err)
	}
	defer f.Close()

	root, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := &grammar.RuleSetBuilder{
		AST: root,
	}
	return b.Build()
}
