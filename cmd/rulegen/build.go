package main

import (
	"github.com/spf13/cobra"

	"github.com/rulegen/rulegen/generator"
)

var buildFlags = struct {
	profile *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Build (or rebuild) a generator's SQLite database",
		Example: `  rulegen build --profile academia.yaml`,
		Args:    cobra.NoArgs,
		RunE:    runBuild,
	}
	buildFlags.profile = cmd.Flags().StringP("profile", "p", "", "generation profile file path")
	// MarkFlagRequired errors only when the flag name is unknown.
	_ = cmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	profile, err := generator.LoadProfile(*buildFlags.profile)
	if err != nil {
		return err
	}

	g, err := generator.New(profile)
	if err != nil {
		return err
	}
	defer g.Close()

	return g.Rebuild(cmd.Context())
}
