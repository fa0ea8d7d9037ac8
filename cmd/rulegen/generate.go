package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rulegen/rulegen/generator"
)

var generateFlags = struct {
	profile *string
	number  *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Generate random strings from a generator's database",
		Example: `  rulegen generate --profile academia.yaml -n 5`,
		Args:    cobra.NoArgs,
		RunE:    runGenerate,
	}
	generateFlags.profile = cmd.Flags().StringP("profile", "p", "", "generation profile file path")
	generateFlags.number = cmd.Flags().IntP("number", "n", 1, "number of strings to generate")
	// MarkFlagRequired errors only when the flag name is unknown.
	_ = cmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	profile, err := generator.LoadProfile(*generateFlags.profile)
	if err != nil {
		return err
	}

	g, err := generator.New(profile)
	if err != nil {
		return err
	}
	defer g.Close()

	for i := 0; i < *generateFlags.number; i++ {
		s, err := g.Generate(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%v\n", s)
	}
	return nil
}
