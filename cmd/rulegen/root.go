package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rulegen",
	Short: "Compile bounded generation grammars and generate random text from them",
	Long: `rulegen works with generation rules written in a bounded, BNF-like
metalanguage:
- Checks a rule file for well-formedness.
- Enumerates every terminal string a rule file can produce.
- Builds a SQLite database from a rule file and a CSV word list.
- Generates random strings from a built database.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
