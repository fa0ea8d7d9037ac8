package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulegen/rulegen/derivation"
)

var enumerateFlags = struct {
	count *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "enumerate <rule file path>",
		Short:   "Print every terminal string a rule file can produce",
		Example: `  rulegen enumerate academia.rules`,
		Args:    cobra.ExactArgs(1),
		RunE:    runEnumerate,
	}
	enumerateFlags.count = cmd.Flags().Bool("count", false, "print the number of distinct terminal strings at the end")
	rootCmd.AddCommand(cmd)
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	rules, err := readRuleSet(args[0])
	if err != nil {
		return err
	}

	e := derivation.NewEnumerator(rules)
	n := 0
	for {
		terminal, ok := e.Next()
		if !ok {
			break
		}
		fmt.Fprintf(os.Stdout, "%v\n", terminal)
		n++
	}
	if *enumerateFlags.count {
		fmt.Fprintf(os.Stdout, "%v\n", n)
	}
	return nil
}
