package cmd

import (
	"github.com/spf13/cobra"
)

var clearBase bool

var baseCmd = &cobra.Command{
	Use:   "base [BRANCH]",
	Short: "Get or set the base branch override for this project",
	Long:  "Without an argument, print the configured base branch override for the current project. With an argument, set it. Use --clear to remove the override and fall back to the repository default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService()
		cwd, err := getCwd()
		if err != nil {
			return err
		}

		if clearBase {
			return svc.SetBase(cwd, "")
		}
		if len(args) == 0 {
			return svc.ShowBase(cwd)
		}
		return svc.SetBase(cwd, args[0])
	},
}

func init() {
	baseCmd.Flags().BoolVar(&clearBase, "clear", false, "Remove the base branch override")
	rootCmd.AddCommand(baseCmd)
}
