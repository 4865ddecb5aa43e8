package cmd

import (
	"github.com/spf13/cobra"
)

var changedCmd = &cobra.Command{
	Use:     "changed [BRANCH]",
	Aliases: []string{"c"},
	Short:   "List files that differ from a branch",
	Long:    "List the files that differ between the working tree and the given branch. Without an argument, diffs against the base branch.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		cwd, err := getCwd()
		if err != nil {
			return err
		}

		branch := ""
		if len(args) > 0 {
			branch = args[0]
		}
		return svc.Changed(cwd, branch)
	},
}

func init() {
	rootCmd.AddCommand(changedCmd)
}
