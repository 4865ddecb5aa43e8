package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/taneba/rome/internal/ui"
	"github.com/taneba/rome/internal/updater"
)

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"u"},
	Short:   "Update rome to the latest version",
	Long:    "Check for and install the latest version of rome from GitHub Releases.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkOnly {
			return updater.CheckOnly(versionStr, os.Stdout)
		}
		return updater.Update(versionStr, verbose, os.Stdout, ui.Confirm)
	},
}

func init() {
	updateCmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Only check if an update is available")
	rootCmd.AddCommand(updateCmd)
}
