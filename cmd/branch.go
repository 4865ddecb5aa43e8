package cmd

import (
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:     "branch",
	Aliases: []string{"b"},
	Short:   "Print the base branch of the current repository",
	Long:    "Print the branch used as the diff baseline: the configured override if one is set, otherwise the repository's default branch (main, falling back to master).",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		cwd, err := getCwd()
		if err != nil {
			return err
		}
		return svc.Branch(cwd)
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
}
